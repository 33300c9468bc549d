package rebalance

// QuoteID maps a trading symbol to the market-qualified quote identifier used
// for price and depth lookups ("exchange:symbol"). Pure and total.
func QuoteID(exchange, symbol string) string {
	return exchange + ":" + symbol
}
