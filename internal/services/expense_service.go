// Package services ties the store, event publishing, and aggregation
// together behind the operations the handlers call.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expensed/internal/amqp"
	"expensed/internal/core"
	"expensed/internal/stats"
	"expensed/internal/store"
)

// EventPublisher publishes expense events. A nil publisher disables
// eventing without changing service behavior.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
	Close() error
}

// ExpenseService implements expense creation, listing, deletion, and
// stats on top of a RecordStore.
type ExpenseService struct {
	store     store.RecordStore
	publisher EventPublisher
	today     func() core.Date
}

func NewExpenseService(s store.RecordStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     s,
		publisher: publisher,
		today:     func() core.Date { return core.DateOf(time.Now()) },
	}
}

// SetToday overrides the clock used for stats windows and defaulted
// expense dates. Intended for tests.
func (s *ExpenseService) SetToday(today func() core.Date) {
	s.today = today
}

// CreateExpenseInput carries the validated fields of a new expense.
type CreateExpenseInput struct {
	OwnerID     string
	Description string
	Amount      core.Money
	Category    string
	Date        core.Date
	TimeOfDay   string
}

// Create stores a new expense and publishes a created event. Event
// publishing failures are logged, not returned: the record is already
// durable.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		TimeOfDay:   in.TimeOfDay,
		CreatedAt:   time.Now().UTC(),
	}
	if e.Date.IsZero() {
		e.Date = s.today()
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEventMessage(
		amqp.EventExpenseCreated, e.ID, e.OwnerID, e.Amount.Cents, e.Date.String()))

	slog.InfoContext(ctx, "Expense created",
		"id", e.ID,
		"owner_id", e.OwnerID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

// Delete removes the expense if the owner matches. Missing or foreign
// records are a silent no-op; a deleted event is published either way.
func (s *ExpenseService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.store.DeleteIfOwned(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEventMessage(
		amqp.EventExpenseDeleted, id, ownerID, 0, ""))

	return nil
}

// List returns the owner's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]core.Expense, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Stats aggregates the owner's expenses for the requested period.
func (s *ExpenseService) Stats(ctx context.Context, ownerID, period string) (stats.Summary, error) {
	records, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("list expenses: %w", err)
	}
	return stats.Summarize(s.today(), records, period), nil
}

func (s *ExpenseService) publish(ctx context.Context, msg *amqp.ExpenseEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"event", msg.Event,
			"expense_id", msg.ExpenseID,
			"error", err)
	}
}

// Close releases the publisher, if any.
func (s *ExpenseService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
