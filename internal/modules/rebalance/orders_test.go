package rebalance

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkartik/evenfolio/internal/domain"
)

func fiveLevels(base float64) []domain.BrokerDepthLevel {
	levels := make([]domain.BrokerDepthLevel, 5)
	for i := range levels {
		levels[i] = domain.BrokerDepthLevel{Price: base + float64(i), Quantity: 100, Orders: 1}
	}
	return levels
}

func TestBuildOrder_MarketBuy(t *testing.T) {
	broker := &mockBroker{}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "INFY", QuoteID: "NSE:INFY", BuyQuantity: 20}
	order, err := builder.BuildOrder(rec, domain.TransactionTypeBuy)
	require.NoError(t, err)

	assert.Equal(t, "INFY", order.Symbol)
	assert.Equal(t, "NSE", order.Exchange)
	assert.Equal(t, 20, order.Quantity)
	assert.Equal(t, domain.TransactionTypeBuy, order.TransactionType)
	assert.Equal(t, domain.OrderTypeMarket, order.OrderType)
	assert.Equal(t, domain.ProductCNC, order.Product)
	assert.Equal(t, "bal-test", order.Tag)
	assert.Equal(t, 0.0, order.Price)
}

func TestBuildOrder_DepthPricedSymbolGetsLimit(t *testing.T) {
	broker := &mockBroker{
		depths: map[string]domain.BrokerDepth{
			"NSE:M50": {
				Buy:  fiveLevels(180.0),
				Sell: fiveLevels(181.0),
			},
		},
	}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "M50", QuoteID: "NSE:M50", BuyQuantity: 5}
	order, err := builder.BuildOrder(rec, domain.TransactionTypeBuy)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeLimit, order.OrderType)
	assert.Equal(t, 185.0, order.Price, "fifth level of the sell side")
}

func TestBuildOrder_DepthPricedSellUsesBuySide(t *testing.T) {
	broker := &mockBroker{
		depths: map[string]domain.BrokerDepth{
			"NSE:MON100": {
				Buy:  fiveLevels(90.0),
				Sell: fiveLevels(91.0),
			},
		},
	}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "MON100", QuoteID: "NSE:MON100", SellQuantity: 3}
	order, err := builder.BuildOrder(rec, domain.TransactionTypeSell)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeLimit, order.OrderType)
	assert.Equal(t, 94.0, order.Price, "fifth level of the buy side")
}

func TestBuildOrder_ShortBookClampsToDeepestLevel(t *testing.T) {
	broker := &mockBroker{
		depths: map[string]domain.BrokerDepth{
			"NSE:MID150": {
				Sell: []domain.BrokerDepthLevel{
					{Price: 150.0, Quantity: 10, Orders: 1},
					{Price: 150.5, Quantity: 10, Orders: 1},
				},
			},
		},
	}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "MID150", QuoteID: "NSE:MID150", BuyQuantity: 1}
	order, err := builder.BuildOrder(rec, domain.TransactionTypeBuy)
	require.NoError(t, err)

	assert.Equal(t, 150.5, order.Price)
}

func TestBuildOrder_EmptyBookSideFails(t *testing.T) {
	broker := &mockBroker{
		depths: map[string]domain.BrokerDepth{
			"NSE:M50": {Buy: fiveLevels(180.0)},
		},
	}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "M50", QuoteID: "NSE:M50", BuyQuantity: 1}
	_, err := builder.BuildOrder(rec, domain.TransactionTypeBuy)
	assert.Error(t, err)
}

func TestBuildOrder_DepthFetchFailureFails(t *testing.T) {
	broker := &mockBroker{depthErr: errors.New("network unreachable")}
	builder := NewOrderBuilder(broker, "NSE", "bal-test", zerolog.Nop())

	rec := AllocationRecord{Symbol: "M50", QuoteID: "NSE:M50", BuyQuantity: 1}
	_, err := builder.BuildOrder(rec, domain.TransactionTypeBuy)
	assert.Error(t, err)
}

func TestBuildOrder_InvalidTradeType(t *testing.T) {
	builder := NewOrderBuilder(&mockBroker{}, "NSE", "bal-test", zerolog.Nop())

	_, err := builder.BuildOrder(AllocationRecord{Symbol: "INFY"}, "HOLD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTradeType)
}
