package rebalance

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/domain"
)

// ErrInvalidTradeType indicates a caller bug: order building was requested
// for a trade type other than BUY or SELL.
var ErrInvalidTradeType = errors.New("invalid trade type")

// depthLevelIndex is the zero-indexed order book level limit prices are
// taken from: the fifth price level of the opposite book side.
const depthLevelIndex = 4

// depthPricedSymbols are order-book-sensitive instruments (thin-book index
// ETFs) that take a limit order priced from market depth instead of a market
// order.
var depthPricedSymbols = map[string]bool{
	"M50":    true,
	"MON100": true,
	"MID150": true,
}

// OrderBuilder converts allocation decisions into executable order records,
// choosing market or limit-at-depth pricing per symbol.
type OrderBuilder struct {
	broker   domain.BrokerClient
	exchange string
	tag      string
	log      zerolog.Logger
}

// NewOrderBuilder creates an order builder. tag is attached to every order
// for auditability (typically the run identifier).
func NewOrderBuilder(broker domain.BrokerClient, exchange, tag string, log zerolog.Logger) *OrderBuilder {
	return &OrderBuilder{
		broker:   broker,
		exchange: exchange,
		tag:      tag,
		log:      log.With().Str("component", "order_builder").Logger(),
	}
}

// BuildOrder shapes an executable order from an allocation decision.
// BUY orders take the allocation's buy quantity, SELL orders its sell
// quantity. Any other trade type is a contract violation.
func (b *OrderBuilder) BuildOrder(rec AllocationRecord, tradeType string) (domain.OrderParams, error) {
	var quantity int
	switch tradeType {
	case domain.TransactionTypeBuy:
		quantity = rec.BuyQuantity
	case domain.TransactionTypeSell:
		quantity = rec.SellQuantity
	default:
		return domain.OrderParams{}, fmt.Errorf("%w: %q", ErrInvalidTradeType, tradeType)
	}

	order := domain.OrderParams{
		Symbol:          rec.Symbol,
		Exchange:        b.exchange,
		Quantity:        quantity,
		TransactionType: tradeType,
		OrderType:       domain.OrderTypeMarket,
		Product:         domain.ProductCNC,
		Tag:             b.tag,
	}

	if depthPricedSymbols[rec.Symbol] {
		price, err := b.depthPrice(rec.QuoteID, tradeType)
		if err != nil {
			return domain.OrderParams{}, fmt.Errorf("failed to price %s from depth: %w", rec.Symbol, err)
		}
		order.OrderType = domain.OrderTypeLimit
		order.Price = price

		b.log.Debug().
			Str("symbol", rec.Symbol).
			Float64("limit_price", price).
			Msg("Priced order from depth")
	}

	return order, nil
}

// depthPrice fetches fresh depth for the quote identifier and returns the
// price at the fifth level of the opposite book side: BUY prices against the
// sell side, SELL against the buy side. A short book falls back to its
// deepest available level.
func (b *OrderBuilder) depthPrice(quoteID, tradeType string) (float64, error) {
	depths, err := b.broker.GetDepth([]string{quoteID})
	if err != nil {
		return 0, err
	}

	depth, ok := depths[quoteID]
	if !ok {
		return 0, fmt.Errorf("no depth returned for %s", quoteID)
	}

	levels := depth.Sell
	if tradeType == domain.TransactionTypeSell {
		levels = depth.Buy
	}
	if len(levels) == 0 {
		return 0, fmt.Errorf("empty order book side for %s", quoteID)
	}

	index := depthLevelIndex
	if index >= len(levels) {
		index = len(levels) - 1
	}
	return levels[index].Price, nil
}
