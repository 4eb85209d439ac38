// Package events publishes notifications about changes to budgets.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the kind of change that happened to a budget.
type Action string

const (
	ActionCreated    Action = "created"
	ActionReplaced   Action = "replaced"
	ActionUpdated    Action = "updated"
	ActionDeleted    Action = "deleted"
	ActionRecomputed Action = "recomputed"
)

// RoutingKeyChanged is the routing key of BudgetChanged messages.
const RoutingKeyChanged = "budget.changed"

// BudgetChanged is published after a transaction that changed a budget
// has been committed.
type BudgetChanged struct {
	BudgetID       uuid.UUID       `json:"budgetId"`
	UserID         uuid.UUID       `json:"userId"`
	Action         Action          `json:"action"`
	TotalIncomes   decimal.Decimal `json:"totalIncomes"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	AvailableMoney decimal.Decimal `json:"availableMoney"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// Publisher delivers events to interested parties.
//
// Implementations must not return errors for failed deliveries, the change
// they describe is already committed.
type Publisher interface {
	Publish(ctx context.Context, event BudgetChanged)
}

// Noop discards all events.
type Noop struct{}

func (Noop) Publish(context.Context, BudgetChanged) {}

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []BudgetChanged
}

func (r *Recorder) Publish(_ context.Context, event BudgetChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}
