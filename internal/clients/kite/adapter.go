package kite

import (
	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/domain"
)

// BrokerAdapter adapts kite.Client to domain.BrokerClient.
// The adapter owns the Kite client internally and exposes a broker-agnostic interface.
type BrokerAdapter struct {
	client *Client
}

// NewBrokerAdapter creates a new Kite broker adapter
func NewBrokerAdapter(apiKey, apiSecret string, log zerolog.Logger) *BrokerAdapter {
	return &BrokerAdapter{
		client: NewClient(apiKey, apiSecret, log),
	}
}

// NewBrokerAdapterWithClient wraps an existing Kite client (for testing)
func NewBrokerAdapterWithClient(client *Client) *BrokerAdapter {
	return &BrokerAdapter{client: client}
}

// Client returns the underlying Kite client (login/session management)
func (a *BrokerAdapter) Client() *Client {
	return a.client
}

// GetHoldings implements domain.BrokerClient
func (a *BrokerAdapter) GetHoldings() ([]domain.BrokerHolding, error) {
	holdings, err := a.client.Holdings()
	if err != nil {
		return nil, err
	}
	return transformHoldingsToDomain(holdings), nil
}

// GetDayPositions implements domain.BrokerClient
func (a *BrokerAdapter) GetDayPositions() ([]domain.BrokerDayPosition, error) {
	positions, err := a.client.Positions()
	if err != nil {
		return nil, err
	}
	return transformDayPositionsToDomain(positions.Day), nil
}

// GetLTP implements domain.BrokerClient
func (a *BrokerAdapter) GetLTP(quoteIDs []string) (map[string]domain.BrokerQuote, error) {
	quotes, err := a.client.LTP(quoteIDs)
	if err != nil {
		return nil, err
	}
	return transformLTPQuotesToDomain(quotes), nil
}

// GetDepth implements domain.BrokerClient
func (a *BrokerAdapter) GetDepth(quoteIDs []string) (map[string]domain.BrokerDepth, error) {
	quotes, err := a.client.Quote(quoteIDs)
	if err != nil {
		return nil, err
	}
	return transformDepthToDomain(quotes), nil
}

// PlaceOrder implements domain.BrokerClient
func (a *BrokerAdapter) PlaceOrder(params domain.OrderParams) (*domain.BrokerOrderResult, error) {
	resp, err := a.client.PlaceOrder(transformOrderParamsToSDK(params))
	if err != nil {
		return nil, err
	}
	return &domain.BrokerOrderResult{OrderID: resp.OrderID}, nil
}

// GetMargins implements domain.BrokerClient
func (a *BrokerAdapter) GetMargins(segment string) (*domain.BrokerMargins, error) {
	margins, err := a.client.Margins(segment)
	if err != nil {
		return nil, err
	}
	return transformMarginsToDomain(margins), nil
}
