// Package rebalance implements the equal-value rebalancing pipeline:
// aggregate holdings with same-day deltas, value them at last traded price,
// allocate buys toward a common target value, shape orders and execute them
// with per-order failure isolation.
package rebalance

import (
	"github.com/mkartik/evenfolio/internal/domain"
)

// Holding is one instrument's effective position for a single run.
// Quantity is computed once per run (opening + same-day delta) and never
// mutated afterwards.
type Holding struct {
	Symbol          string  `json:"symbol"`
	QuoteID         string  `json:"quote_id"`
	InstrumentToken string  `json:"instrument_token"`
	OpeningQuantity int     `json:"opening_quantity"`
	DayQuantity     int     `json:"day_quantity"`
	Quantity        int     `json:"quantity"`
	LastPrice       float64 `json:"last_price"`
}

// AllocationRecord is the allocation decision for one eligible symbol.
// BuyQuantity > 0 if and only if an order is queued for the symbol.
// SellQuantity is always zero under the current allocator; the field and the
// sell-side order path exist for future use.
type AllocationRecord struct {
	Symbol          string  `json:"symbol"`
	QuoteID         string  `json:"quote_id"`
	InstrumentToken string  `json:"instrument_token"`
	OpeningQuantity int     `json:"opening_quantity"`
	Quantity        int     `json:"quantity"`
	LastPrice       float64 `json:"last_price"`
	Price           string  `json:"price"` // last traded price, 2-decimal fixed formatting
	CurrentValue    float64 `json:"current_value"`
	TargetGap       float64 `json:"target_gap"`
	BuyQuantity     int     `json:"buy_quantity"`
	BuyAmount       float64 `json:"buy_amount"`
	ProposedValue   float64 `json:"proposed_value"`
	SellQuantity    int     `json:"sell_quantity"`
}

// FailedOrder pairs an order with the error captured when submitting it
type FailedOrder struct {
	Order domain.OrderParams `json:"order"`
	Err   error              `json:"-"`
	Error string             `json:"error"`
}
