package domain

// OrderTransactionType values accepted by BrokerClient.PlaceOrder
const (
	TransactionTypeBuy  = "BUY"
	TransactionTypeSell = "SELL"
)

// Order style values
const (
	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
)

// ProductCNC is the delivery (cash-and-carry) product type: full upfront
// payment, no intraday leverage.
const ProductCNC = "CNC"

// BrokerClient is the broker-agnostic interface consumed by the rebalancing
// pipeline. Implementations perform blocking I/O; timeout and retry policy
// belong to the implementation, not to the pipeline.
type BrokerClient interface {
	// GetHoldings returns opening holdings. Failure is fatal to a run.
	GetHoldings() ([]BrokerHolding, error)

	// GetDayPositions returns net same-day position deltas. Failure is fatal to a run.
	GetDayPositions() ([]BrokerDayPosition, error)

	// GetLTP returns one quote per requested quote identifier (exchange:symbol).
	// Failure is fatal to a run; a missing entry for a requested identifier is not.
	GetLTP(quoteIDs []string) (map[string]BrokerQuote, error)

	// GetDepth returns order book depth per requested quote identifier.
	GetDepth(quoteIDs []string) (map[string]BrokerDepth, error)

	// PlaceOrder submits a single regular order. Failure is per-call and is
	// isolated by the execution coordinator.
	PlaceOrder(params OrderParams) (*BrokerOrderResult, error)

	// GetMargins returns available funds; segment may be empty for all segments.
	GetMargins(segment string) (*BrokerMargins, error)
}
