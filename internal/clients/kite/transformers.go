package kite

import (
	"strconv"

	"github.com/mkartik/evenfolio/internal/clients/kite/sdk"
	"github.com/mkartik/evenfolio/internal/domain"
)

// Transformers convert Kite SDK wire models into broker-agnostic domain types.

func instrumentToken(token uint32) string {
	return strconv.FormatUint(uint64(token), 10)
}

func transformHoldingsToDomain(holdings []sdk.Holding) []domain.BrokerHolding {
	out := make([]domain.BrokerHolding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, domain.BrokerHolding{
			Symbol:          h.TradingSymbol,
			Exchange:        h.Exchange,
			Quantity:        h.Quantity,
			AveragePrice:    h.AveragePrice,
			LastPrice:       h.LastPrice,
			InstrumentToken: instrumentToken(h.InstrumentToken),
		})
	}
	return out
}

func transformDayPositionsToDomain(positions []sdk.Position) []domain.BrokerDayPosition {
	out := make([]domain.BrokerDayPosition, 0, len(positions))
	for _, p := range positions {
		out = append(out, domain.BrokerDayPosition{
			Symbol:   p.TradingSymbol,
			Quantity: p.Quantity,
		})
	}
	return out
}

func transformLTPQuotesToDomain(quotes map[string]sdk.LTPQuote) map[string]domain.BrokerQuote {
	out := make(map[string]domain.BrokerQuote, len(quotes))
	for quoteID, q := range quotes {
		out[quoteID] = domain.BrokerQuote{
			InstrumentToken: instrumentToken(q.InstrumentToken),
			LastPrice:       q.LastPrice,
		}
	}
	return out
}

func transformDepthLevels(levels []sdk.DepthLevel) []domain.BrokerDepthLevel {
	out := make([]domain.BrokerDepthLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, domain.BrokerDepthLevel{
			Price:    l.Price,
			Quantity: l.Quantity,
			Orders:   l.Orders,
		})
	}
	return out
}

func transformDepthToDomain(quotes map[string]sdk.Quote) map[string]domain.BrokerDepth {
	out := make(map[string]domain.BrokerDepth, len(quotes))
	for quoteID, q := range quotes {
		out[quoteID] = domain.BrokerDepth{
			Buy:  transformDepthLevels(q.Depth.Buy),
			Sell: transformDepthLevels(q.Depth.Sell),
		}
	}
	return out
}

func transformOrderParamsToSDK(params domain.OrderParams) sdk.OrderParams {
	return sdk.OrderParams{
		TradingSymbol:   params.Symbol,
		Exchange:        params.Exchange,
		TransactionType: params.TransactionType,
		OrderType:       params.OrderType,
		Quantity:        params.Quantity,
		Product:         params.Product,
		Price:           params.Price,
		Tag:             params.Tag,
	}
}

func transformMarginsToDomain(margins *sdk.SegmentMargins) *domain.BrokerMargins {
	return &domain.BrokerMargins{
		Enabled:       margins.Enabled,
		Net:           margins.Net,
		AvailableCash: margins.Available.Cash,
		UsedDebits:    margins.Utilised.Debits,
	}
}
