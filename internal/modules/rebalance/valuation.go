package rebalance

import (
	"github.com/mkartik/evenfolio/internal/domain"
)

// excludedSymbols are ETF symbols that must never drive allocation: they are
// skipped entirely and contribute neither allocation records nor the max
// current value the target defaults to.
var excludedSymbols = map[string]bool{
	"LIQUIDBEES": true,
	"GOLDBEES":   true,
	"NIFTYBEES":  true,
}

// isExcluded reports whether a symbol is policy-excluded from allocation
func isExcluded(symbol string) bool {
	return excludedSymbols[symbol]
}

// applyQuotes prices each holding from the LTP lookup. A missing quote
// resolves to a last traded price of zero; this is a deliberate degradation,
// not an error, and downstream the zero price suppresses any buy for the
// symbol.
func applyQuotes(holdings []Holding, quotes map[string]domain.BrokerQuote) {
	for i := range holdings {
		quote, ok := quotes[holdings[i].QuoteID]
		if !ok {
			holdings[i].LastPrice = 0
			continue
		}
		holdings[i].LastPrice = quote.LastPrice
		if quote.InstrumentToken != "" {
			holdings[i].InstrumentToken = quote.InstrumentToken
		}
	}
}

// currentValue is the holding's monetary value at its last traded price
func currentValue(h Holding) float64 {
	return float64(h.Quantity) * h.LastPrice
}

// maxCurrentValue returns the maximum current value across holdings not in
// the exclusion set, or zero if no eligible holdings exist. Only the value
// matters; which symbol attains it is not part of the contract.
func maxCurrentValue(holdings []Holding) float64 {
	max := 0.0
	for _, h := range holdings {
		if isExcluded(h.Symbol) {
			continue
		}
		if value := currentValue(h); value > max {
			max = value
		}
	}
	return max
}
