package rebalance

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/domain"
)

// Run is the context of one rebalancing invocation. It owns all pipeline
// state; nothing is shared or mutated across runs.
//
// Phases are cumulative and strictly sequential:
//
//	Fetch    — holdings, day positions and prices loaded
//	Allocate — allocation records computed and buy orders queued
//	Execute  — queued orders submitted, outcomes partitioned
//
// Calling Execute before Allocate submits nothing and yields empty outcome
// lists; it is not an error.
type Run struct {
	broker   domain.BrokerClient
	exchange string
	builder  *OrderBuilder
	log      zerolog.Logger
	id       string

	fetched   bool
	allocated bool
	executed  bool

	holdings []Holding

	allocations    []AllocationRecord
	orders         []domain.OrderParams
	totalBuyAmount float64
	maxValue       float64
	targetValue    float64

	executedOrders  []domain.OrderParams
	executedResults []domain.BrokerOrderResult
	failedOrders    []FailedOrder
}

// NewRun creates a fresh run context
func NewRun(broker domain.BrokerClient, exchange string, log zerolog.Logger) *Run {
	id := uuid.NewString()
	// Broker order tags are length-limited; the short id is enough to
	// correlate orders with a run in the order book.
	tag := "bal-" + id[:8]

	runLog := log.With().Str("run_id", id).Logger()
	return &Run{
		broker:   broker,
		exchange: exchange,
		builder:  NewOrderBuilder(broker, exchange, tag, runLog),
		log:      runLog,
		id:       id,
	}
}

// ID returns the run identifier
func (r *Run) ID() string {
	return r.id
}

// Fetch loads holdings, same-day positions and last traded prices, and
// aggregates them into effective holdings. Any fetch failure is fatal to the
// run: the pipeline never continues with partial market data.
func (r *Run) Fetch() error {
	brokerHoldings, err := r.broker.GetHoldings()
	if err != nil {
		return fmt.Errorf("failed to fetch holdings: %w", err)
	}

	dayPositions, err := r.broker.GetDayPositions()
	if err != nil {
		return fmt.Errorf("failed to fetch day positions: %w", err)
	}

	r.holdings = aggregateHoldings(r.exchange, brokerHoldings, dayPositions)

	quoteIDs := make([]string, 0, len(r.holdings))
	for _, h := range r.holdings {
		quoteIDs = append(quoteIDs, h.QuoteID)
	}

	quotes, err := r.broker.GetLTP(quoteIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch last traded prices: %w", err)
	}
	applyQuotes(r.holdings, quotes)

	r.fetched = true
	r.log.Info().
		Int("holdings", len(r.holdings)).
		Int("day_positions", len(dayPositions)).
		Int("quotes", len(quotes)).
		Msg("Fetched brokerage state")
	return nil
}

// Allocate fixes the target value and computes allocation records and the
// buy order queue. A targetOverride <= 0 defaults the target to the maximum
// current value among eligible holdings.
func (r *Run) Allocate(targetOverride float64) error {
	r.maxValue = maxCurrentValue(r.holdings)

	target := targetOverride
	if target <= 0 {
		target = r.maxValue
	}
	r.targetValue = target

	r.allocations, r.totalBuyAmount = allocate(r.holdings, target)

	r.orders = r.orders[:0]
	for _, rec := range r.allocations {
		if rec.BuyQuantity <= 0 {
			continue
		}
		order, err := r.builder.BuildOrder(rec, domain.TransactionTypeBuy)
		if err != nil {
			return fmt.Errorf("failed to build order for %s: %w", rec.Symbol, err)
		}
		r.orders = append(r.orders, order)
	}

	r.allocated = true
	r.log.Info().
		Float64("target_value", r.targetValue).
		Float64("max_current_value", r.maxValue).
		Float64("total_buy_amount", r.totalBuyAmount).
		Int("orders_queued", len(r.orders)).
		Msg("Allocated toward target value")
	return nil
}

// Execute submits the queued buy orders one at a time, in queue order,
// exactly once each. A failed submission is captured and the batch
// continues; failed and executed lists partition the submitted orders.
func (r *Run) Execute() {
	for _, order := range r.orders {
		result, err := r.broker.PlaceOrder(order)
		if err != nil {
			r.log.Error().
				Err(err).
				Str("symbol", order.Symbol).
				Int("quantity", order.Quantity).
				Msg("Order submission failed")
			r.failedOrders = append(r.failedOrders, FailedOrder{
				Order: order,
				Err:   err,
				Error: err.Error(),
			})
			continue
		}

		r.executedOrders = append(r.executedOrders, order)
		r.executedResults = append(r.executedResults, *result)
		r.log.Debug().
			Str("symbol", order.Symbol).
			Str("order_id", result.OrderID).
			Msg("Order executed")
	}

	r.executed = true
	r.log.Info().
		Int("executed", len(r.executedOrders)).
		Int("failed", len(r.failedOrders)).
		Msg("Execution pass complete")
}

// Holdings returns the aggregated holdings of the run
func (r *Run) Holdings() []Holding {
	return r.holdings
}

// Allocations returns the allocation records in input order
func (r *Run) Allocations() []AllocationRecord {
	return r.allocations
}

// Orders returns the queued buy orders
func (r *Run) Orders() []domain.OrderParams {
	return r.orders
}

// ExecutedOrders returns the successfully submitted orders
func (r *Run) ExecutedOrders() []domain.OrderParams {
	return r.executedOrders
}

// ExecutedResults returns broker confirmations, position-paired with ExecutedOrders
func (r *Run) ExecutedResults() []domain.BrokerOrderResult {
	return r.executedResults
}

// FailedOrders returns orders whose submission failed, with captured errors
func (r *Run) FailedOrders() []FailedOrder {
	return r.failedOrders
}

// TotalBuyAmount returns the sum of buy amounts over all allocations
func (r *Run) TotalBuyAmount() float64 {
	return r.totalBuyAmount
}

// MaxCurrentValue returns the maximum current value among eligible holdings
func (r *Run) MaxCurrentValue() float64 {
	return r.maxValue
}

// TargetValue returns the target value the run allocated toward
func (r *Run) TargetValue() float64 {
	return r.targetValue
}

// Fetched reports whether the fetch phase has completed
func (r *Run) Fetched() bool {
	return r.fetched
}

// Allocated reports whether the allocation phase has completed
func (r *Run) Allocated() bool {
	return r.allocated
}

// Executed reports whether the execution phase has completed
func (r *Run) Executed() bool {
	return r.executed
}
