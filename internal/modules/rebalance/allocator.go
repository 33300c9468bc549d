package rebalance

import (
	"fmt"
	"math"
)

// allocate computes one AllocationRecord per eligible holding, in input
// order, plus the running total buy amount.
//
// Per symbol: gap = target - current value; buy quantity = floor(gap / price)
// when the gap is positive, else zero. A zero last traded price always yields
// a zero buy quantity, never a division fault.
func allocate(holdings []Holding, target float64) ([]AllocationRecord, float64) {
	records := make([]AllocationRecord, 0, len(holdings))
	totalBuyAmount := 0.0

	for _, h := range holdings {
		if isExcluded(h.Symbol) {
			continue
		}

		current := currentValue(h)
		gap := target - current

		buyQuantity := 0
		if gap > 0 && h.LastPrice > 0 {
			buyQuantity = int(math.Floor(gap / h.LastPrice))
		}
		buyAmount := float64(buyQuantity) * h.LastPrice
		totalBuyAmount += buyAmount

		records = append(records, AllocationRecord{
			Symbol:          h.Symbol,
			QuoteID:         h.QuoteID,
			InstrumentToken: h.InstrumentToken,
			OpeningQuantity: h.OpeningQuantity,
			Quantity:        h.Quantity,
			LastPrice:       h.LastPrice,
			Price:           fmt.Sprintf("%.2f", h.LastPrice),
			CurrentValue:    current,
			TargetGap:       gap,
			BuyQuantity:     buyQuantity,
			BuyAmount:       buyAmount,
			ProposedValue:   current + buyAmount,
			SellQuantity:    0,
		})
	}

	return records, totalBuyAmount
}
