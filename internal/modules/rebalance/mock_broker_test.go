package rebalance

import (
	"fmt"

	"github.com/mkartik/evenfolio/internal/domain"
)

// mockBroker is a canned-data BrokerClient for pipeline tests. Error fields
// inject failures per call; failOrders injects per-symbol submission failures.
type mockBroker struct {
	holdings     []domain.BrokerHolding
	holdingsErr  error
	positions    []domain.BrokerDayPosition
	positionsErr error
	quotes       map[string]domain.BrokerQuote
	quotesErr    error
	depths       map[string]domain.BrokerDepth
	depthErr     error
	margins      *domain.BrokerMargins
	marginsErr   error

	failOrders map[string]error

	placedOrders []domain.OrderParams
	ltpRequests  [][]string
}

func (m *mockBroker) GetHoldings() ([]domain.BrokerHolding, error) {
	if m.holdingsErr != nil {
		return nil, m.holdingsErr
	}
	return m.holdings, nil
}

func (m *mockBroker) GetDayPositions() ([]domain.BrokerDayPosition, error) {
	if m.positionsErr != nil {
		return nil, m.positionsErr
	}
	return m.positions, nil
}

func (m *mockBroker) GetLTP(quoteIDs []string) (map[string]domain.BrokerQuote, error) {
	m.ltpRequests = append(m.ltpRequests, quoteIDs)
	if m.quotesErr != nil {
		return nil, m.quotesErr
	}
	return m.quotes, nil
}

func (m *mockBroker) GetDepth(quoteIDs []string) (map[string]domain.BrokerDepth, error) {
	if m.depthErr != nil {
		return nil, m.depthErr
	}
	return m.depths, nil
}

func (m *mockBroker) PlaceOrder(params domain.OrderParams) (*domain.BrokerOrderResult, error) {
	m.placedOrders = append(m.placedOrders, params)
	if err, ok := m.failOrders[params.Symbol]; ok {
		return nil, err
	}
	return &domain.BrokerOrderResult{
		OrderID: fmt.Sprintf("order-%d", len(m.placedOrders)),
	}, nil
}

func (m *mockBroker) GetMargins(segment string) (*domain.BrokerMargins, error) {
	if m.marginsErr != nil {
		return nil, m.marginsErr
	}
	return m.margins, nil
}
