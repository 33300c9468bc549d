package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkartik/evenfolio/internal/domain"
)

func TestAggregateHoldings(t *testing.T) {
	holdings := []domain.BrokerHolding{
		{Symbol: "INFY", Quantity: 10, LastPrice: 1500.0, InstrumentToken: "408065"},
		{Symbol: "TCS", Quantity: 5, LastPrice: 3200.0},
		{Symbol: "SBIN", Quantity: 20, LastPrice: 600.0},
	}
	positions := []domain.BrokerDayPosition{
		{Symbol: "TCS", Quantity: 5},
		{Symbol: "SBIN", Quantity: -8},
	}

	result := aggregateHoldings("NSE", holdings, positions)
	require.Len(t, result, 3)

	assert.Equal(t, "INFY", result[0].Symbol)
	assert.Equal(t, "NSE:INFY", result[0].QuoteID)
	assert.Equal(t, "408065", result[0].InstrumentToken)
	assert.Equal(t, 10, result[0].OpeningQuantity)
	assert.Equal(t, 0, result[0].DayQuantity)
	assert.Equal(t, 10, result[0].Quantity)

	assert.Equal(t, 5, result[1].OpeningQuantity)
	assert.Equal(t, 5, result[1].DayQuantity)
	assert.Equal(t, 10, result[1].Quantity, "bought-today quantity adds to opening")

	assert.Equal(t, -8, result[2].DayQuantity)
	assert.Equal(t, 12, result[2].Quantity, "sold-today quantity subtracts from opening")
}

func TestAggregateHoldings_DayOnlyPositionIgnored(t *testing.T) {
	holdings := []domain.BrokerHolding{
		{Symbol: "INFY", Quantity: 10},
	}
	positions := []domain.BrokerDayPosition{
		{Symbol: "WIPRO", Quantity: 15},
	}

	result := aggregateHoldings("NSE", holdings, positions)
	require.Len(t, result, 1)
	assert.Equal(t, "INFY", result[0].Symbol)
}

func TestAggregateHoldings_DuplicatePositionLastWriteWins(t *testing.T) {
	holdings := []domain.BrokerHolding{
		{Symbol: "INFY", Quantity: 10},
	}
	positions := []domain.BrokerDayPosition{
		{Symbol: "INFY", Quantity: 3},
		{Symbol: "INFY", Quantity: 7},
	}

	result := aggregateHoldings("NSE", holdings, positions)
	require.Len(t, result, 1)
	assert.Equal(t, 7, result[0].DayQuantity)
	assert.Equal(t, 17, result[0].Quantity)
}

func TestAggregateHoldings_Empty(t *testing.T) {
	result := aggregateHoldings("NSE", nil, nil)
	assert.Empty(t, result)
}

func TestQuoteID(t *testing.T) {
	assert.Equal(t, "NSE:INFY", QuoteID("NSE", "INFY"))
	assert.Equal(t, "BSE:500209", QuoteID("BSE", "500209"))
}
