// Package worker consumes expense events and raises spending alerts.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expensed/internal/amqp"
	"expensed/internal/core"
	"expensed/internal/stats"
	"expensed/internal/store"
)

// EventSource delivers expense events to a handler until the context is
// cancelled.
type EventSource interface {
	ConsumeExpenseEvents(ctx context.Context, handler func(*amqp.ExpenseEventMessage) error) error
}

// AlertWorker recomputes an account's trailing 7-day spend on every
// expense event and logs warnings as it approaches the weekly limit.
type AlertWorker struct {
	store  store.RecordStore
	source EventSource
	limit  core.Money
	logger *slog.Logger
	today  func() core.Date
}

func NewAlertWorker(s store.RecordStore, source EventSource, weeklyLimit core.Money, logger *slog.Logger) *AlertWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertWorker{
		store:  s,
		source: source,
		limit:  weeklyLimit,
		logger: logger,
		today:  func() core.Date { return core.DateOf(time.Now()) },
	}
}

// SetToday overrides the clock used for the trailing window. Intended
// for tests.
func (w *AlertWorker) SetToday(today func() core.Date) {
	w.today = today
}

// Run consumes events until ctx is cancelled.
func (w *AlertWorker) Run(ctx context.Context) error {
	return w.source.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
		return w.HandleEvent(ctx, msg)
	})
}

// HandleEvent checks the owner's weekly spend after an expense event.
// Returning an error requeues the message.
func (w *AlertWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	records, err := w.store.ListByOwner(ctx, msg.OwnerID)
	if err != nil {
		return fmt.Errorf("list expenses for %s: %w", msg.OwnerID, err)
	}

	spentCents := stats.TrailingWeekCents(w.today(), records)

	if w.limit.Cents <= 0 {
		return nil
	}

	spent := core.Money{Cents: spentCents}
	percent := float64(spentCents) / float64(w.limit.Cents) * 100

	switch {
	case spentCents > w.limit.Cents:
		w.logger.WarnContext(ctx, "Weekly spending limit exceeded",
			"owner_id", msg.OwnerID,
			"event", msg.Event,
			"weekly_spent", spent.Units(),
			"limit", w.limit.Units(),
			"percent", fmt.Sprintf("%.1f", percent))
	case percent > 80:
		w.logger.WarnContext(ctx, "Weekly spending approaching limit",
			"owner_id", msg.OwnerID,
			"event", msg.Event,
			"weekly_spent", spent.Units(),
			"limit", w.limit.Units(),
			"percent", fmt.Sprintf("%.1f", percent))
	default:
		w.logger.InfoContext(ctx, "Weekly spending within limit",
			"owner_id", msg.OwnerID,
			"event", msg.Event,
			"weekly_spent", spent.Units(),
			"limit", w.limit.Units())
	}

	return nil
}
