package rebalance

import (
	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/domain"
)

// Outcome is the result of a rebalancing run, shaped for API responses.
type Outcome struct {
	RunID           string                     `json:"run_id"`
	TargetValue     float64                    `json:"target_value"`
	MaxCurrentValue float64                    `json:"max_current_value"`
	TotalBuyAmount  float64                    `json:"total_buy_amount"`
	Allocations     []AllocationRecord         `json:"allocations"`
	Orders          []domain.OrderParams       `json:"orders"`
	ExecutedOrders  []domain.OrderParams       `json:"executed_orders,omitempty"`
	ExecutedResults []domain.BrokerOrderResult `json:"executed_results,omitempty"`
	FailedOrders    []FailedOrder              `json:"failed_orders,omitempty"`
}

// Service orchestrates rebalancing runs against a broker
type Service struct {
	broker        domain.BrokerClient
	exchange      string
	defaultTarget float64
	log           zerolog.Logger
}

// NewService creates a new rebalancing service. defaultTarget <= 0 means runs
// derive their target from the largest current holding value.
func NewService(broker domain.BrokerClient, exchange string, defaultTarget float64, log zerolog.Logger) *Service {
	return &Service{
		broker:        broker,
		exchange:      exchange,
		defaultTarget: defaultTarget,
		log:           log.With().Str("service", "rebalance").Logger(),
	}
}

// resolveTarget prefers a per-request override over the configured default
func (s *Service) resolveTarget(override float64) float64 {
	if override > 0 {
		return override
	}
	return s.defaultTarget
}

// Preview runs fetch and allocation without submitting any orders
func (s *Service) Preview(targetOverride float64) (*Outcome, error) {
	run := NewRun(s.broker, s.exchange, s.log)
	if err := run.Fetch(); err != nil {
		return nil, err
	}
	if err := run.Allocate(s.resolveTarget(targetOverride)); err != nil {
		return nil, err
	}
	return outcome(run), nil
}

// Rebalance runs the full pipeline: fetch, allocate, execute
func (s *Service) Rebalance(targetOverride float64) (*Outcome, error) {
	run := NewRun(s.broker, s.exchange, s.log)
	if err := run.Fetch(); err != nil {
		return nil, err
	}
	if err := run.Allocate(s.resolveTarget(targetOverride)); err != nil {
		return nil, err
	}
	run.Execute()
	return outcome(run), nil
}

// Margins fetches account margins for the given segment
func (s *Service) Margins(segment string) (*domain.BrokerMargins, error) {
	return s.broker.GetMargins(segment)
}

func outcome(run *Run) *Outcome {
	return &Outcome{
		RunID:           run.ID(),
		TargetValue:     run.TargetValue(),
		MaxCurrentValue: run.MaxCurrentValue(),
		TotalBuyAmount:  run.TotalBuyAmount(),
		Allocations:     run.Allocations(),
		Orders:          run.Orders(),
		ExecutedOrders:  run.ExecutedOrders(),
		ExecutedResults: run.ExecutedResults(),
		FailedOrders:    run.FailedOrders(),
	}
}
