package worker

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensed/internal/amqp"
	"expensed/internal/core"
	"expensed/internal/store/memory"
)

func fixedToday() core.Date {
	return core.NewDate(2024, 3, 15)
}

func newWorkerWithSpend(t *testing.T, buf *bytes.Buffer, limitCents int64, spentCents ...int64) (*AlertWorker, string) {
	t.Helper()

	st := memory.New()
	ownerID := uuid.NewString()
	for _, cents := range spentCents {
		require.NoError(t, st.Insert(context.Background(), core.Expense{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Description: "spend",
			Amount:      core.Money{Cents: cents},
			Category:    "general",
			Date:        core.NewDate(2024, 3, 14),
			CreatedAt:   time.Now().UTC(),
		}))
	}

	logger := slog.New(slog.NewTextHandler(buf, nil))
	w := NewAlertWorker(st, nil, core.Money{Cents: limitCents}, logger)
	w.SetToday(fixedToday)
	return w, ownerID
}

func event(ownerID string) *amqp.ExpenseEventMessage {
	return amqp.NewExpenseEventMessage(amqp.EventExpenseCreated, uuid.NewString(), ownerID, 100, "2024-03-14")
}

func TestHandleEventWithinLimit(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 50000, 10000)

	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Contains(t, buf.String(), "Weekly spending within limit")
	assert.NotContains(t, buf.String(), "approaching")
}

func TestHandleEventApproachingLimit(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 50000, 45000)

	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Contains(t, buf.String(), "Weekly spending approaching limit")
}

func TestHandleEventOverLimit(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 50000, 45000, 10000)

	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Contains(t, buf.String(), "Weekly spending limit exceeded")
}

func TestHandleEventExactlyAtLimit(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 50000, 49999, 1)

	// Spending equal to the limit approaches it but does not exceed it;
	// the comparison happens in cents, never through a float round-trip.
	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Contains(t, buf.String(), "Weekly spending approaching limit")
	assert.NotContains(t, buf.String(), "exceeded")
}

func TestHandleEventIgnoresOldSpending(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 50000)

	// Spending outside the trailing week does not count.
	require.NoError(t, w.store.Insert(context.Background(), core.Expense{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Description: "old",
		Amount:      core.Money{Cents: 99000},
		Category:    "general",
		Date:        core.NewDate(2024, 1, 1),
		CreatedAt:   time.Now().UTC(),
	}))

	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Contains(t, buf.String(), "Weekly spending within limit")
}

func TestHandleEventZeroLimitDisablesAlerts(t *testing.T) {
	var buf bytes.Buffer
	w, ownerID := newWorkerWithSpend(t, &buf, 0, 99000)

	require.NoError(t, w.HandleEvent(context.Background(), event(ownerID)))
	assert.Empty(t, buf.String())
}
