package domain

// Broker-agnostic types for the rebalancing pipeline.
// These types abstract away broker-specific wire formats.

// BrokerHolding represents an opening (delivery) holding as reported by the broker
type BrokerHolding struct {
	Symbol          string  // Trading symbol (unique key)
	Exchange        string  // Exchange the holding is listed on
	Quantity        int     // Opening quantity
	AveragePrice    float64 // Average acquisition price
	LastPrice       float64 // Last traded price as of the holdings snapshot
	InstrumentToken string  // Opaque broker instrument identifier
}

// BrokerDayPosition represents the net same-day traded quantity for a symbol
type BrokerDayPosition struct {
	Symbol   string // Trading symbol
	Quantity int    // Net same-day traded quantity (signed)
}

// BrokerQuote represents a last-traded-price record for one quote identifier
type BrokerQuote struct {
	InstrumentToken string  // Opaque broker instrument identifier
	LastPrice       float64 // Last traded price
}

// BrokerDepthLevel represents a single resting price level in the order book
type BrokerDepthLevel struct {
	Price    float64 // Price at this level
	Quantity int     // Quantity resting at this level
	Orders   int     // Number of orders at this level
}

// BrokerDepth represents ranked order book depth for one quote identifier
type BrokerDepth struct {
	Buy  []BrokerDepthLevel // Bid side, best first
	Sell []BrokerDepthLevel // Offer side, best first
}

// OrderParams describes an order to be placed with the broker.
// Immutable once built.
type OrderParams struct {
	Symbol          string  // Trading symbol
	Exchange        string  // Exchange code
	Quantity        int     // Order quantity (positive)
	TransactionType string  // "BUY" or "SELL"
	OrderType       string  // "MARKET" or "LIMIT"
	Price           float64 // Limit price; only meaningful for LIMIT orders
	Product         string  // Product type, e.g. "CNC" for delivery
	Tag             string  // Client-side tag for auditability
}

// BrokerOrderResult represents the broker's confirmation of a placed order
type BrokerOrderResult struct {
	OrderID string // Broker-assigned order identifier
}

// BrokerMargins represents available funds for a trading segment
type BrokerMargins struct {
	Enabled       bool    // Whether the segment is enabled for the account
	Net           float64 // Net available margin
	AvailableCash float64 // Available cash balance
	UsedDebits    float64 // Utilised debits
}
