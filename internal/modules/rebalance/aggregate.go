package rebalance

import (
	"github.com/mkartik/evenfolio/internal/domain"
)

// aggregateHoldings merges opening holdings with net same-day position deltas
// into effective holding quantities.
//
// The delta lookup is last-write-wins if the broker supplies duplicate symbols.
// Day positions without a matching holding are ignored: this pipeline only
// rebalances instruments already held.
func aggregateHoldings(exchange string, holdings []domain.BrokerHolding, positions []domain.BrokerDayPosition) []Holding {
	deltas := make(map[string]int, len(positions))
	for _, p := range positions {
		deltas[p.Symbol] = p.Quantity
	}

	out := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, Holding{
			Symbol:          h.Symbol,
			QuoteID:         QuoteID(exchange, h.Symbol),
			InstrumentToken: h.InstrumentToken,
			OpeningQuantity: h.Quantity,
			DayQuantity:     deltas[h.Symbol],
			Quantity:        h.Quantity + deltas[h.Symbol],
			LastPrice:       h.LastPrice,
		})
	}
	return out
}
