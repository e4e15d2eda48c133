package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensed/internal/amqp"
	"expensed/internal/core"
	"expensed/internal/store"
	"expensed/internal/store/memory"
)

type capturingPublisher struct {
	messages []*amqp.ExpenseEventMessage
	err      error
	closed   bool
}

func (p *capturingPublisher) PublishExpenseEvent(_ context.Context, msg *amqp.ExpenseEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturingPublisher) Close() error {
	p.closed = true
	return nil
}

func fixedToday() core.Date {
	return core.NewDate(2024, 3, 15)
}

func TestCreatePublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	svc.SetToday(fixedToday)

	e, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:     "acc-1",
		Description: "groceries",
		Amount:      core.Money{Cents: 2550},
		Category:    "food",
		Date:        core.NewDate(2024, 3, 14),
		TimeOfDay:   "10:30",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, amqp.EventExpenseCreated, msg.Event)
	assert.Equal(t, e.ID, msg.ExpenseID)
	assert.Equal(t, "acc-1", msg.OwnerID)
	assert.Equal(t, int64(2550), msg.AmountCents)
	assert.Equal(t, "2024-03-14", msg.Date)
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)
	svc.SetToday(fixedToday)

	e, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:     "acc-1",
		Description: "coffee",
		Amount:      core.Money{Cents: 300},
		Category:    "food",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", e.Date.String())
}

func TestCreateRejectsInvalidExpense(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)

	_, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:  "acc-1",
		Amount:   core.Money{Cents: 100},
		Category: "food",
	})
	assert.ErrorIs(t, err, core.ErrEmptyDescription)
}

func TestCreateSurvivesPublisherFailure(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(memory.New(), pub)
	svc.SetToday(fixedToday)

	e, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:     "acc-1",
		Description: "groceries",
		Amount:      core.Money{Cents: 2550},
		Category:    "food",
	})
	require.NoError(t, err)

	// The record made it to the store despite the publish error.
	got, err := svc.List(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}

func TestDeleteIsSilentForForeignRecords(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	svc.SetToday(fixedToday)

	e, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:     "acc-1",
		Description: "groceries",
		Amount:      core.Money{Cents: 2550},
		Category:    "food",
	})
	require.NoError(t, err)

	// Another account deleting acc-1's record changes nothing.
	require.NoError(t, svc.Delete(context.Background(), e.ID, "acc-2"))
	got, err := svc.List(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, svc.Delete(context.Background(), e.ID, "acc-1"))
	got, err = svc.List(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatsUsesInjectedToday(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)
	svc.SetToday(fixedToday)

	_, err := svc.Create(context.Background(), CreateExpenseInput{
		OwnerID:     "acc-1",
		Description: "groceries",
		Amount:      core.Money{Cents: 1000},
		Category:    "food",
		Date:        core.NewDate(2024, 3, 12),
	})
	require.NoError(t, err)

	summary, err := svc.Stats(context.Background(), "acc-1", "weekly")
	require.NoError(t, err)
	assert.Equal(t, "weekly", summary.Period)
	assert.Equal(t, 10.0, summary.TotalSpent)
	assert.Equal(t, 10.0, summary.WeeklySpent)
}

func TestCloseReleasesPublisher(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	require.NoError(t, svc.Close())
	assert.True(t, pub.closed)

	// Nil publisher closes cleanly too.
	svc = NewExpenseService(memory.New(), nil)
	require.NoError(t, svc.Close())
}

func TestAccountRegisterAndAuthenticate(t *testing.T) {
	svc := NewAccountService(memory.New())

	a, err := svc.Register(context.Background(), "mario", "mario@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, "hunter2", a.PasswordHash)

	got, err := svc.Authenticate(context.Background(), "mario", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Authenticate(context.Background(), "mario", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "hunter2")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAccountRegisterDuplicates(t *testing.T) {
	svc := NewAccountService(memory.New())

	_, err := svc.Register(context.Background(), "mario", "mario@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "mario", "other@example.com", "hunter2")
	assert.ErrorIs(t, err, store.ErrDuplicateUsername)

	_, err = svc.Register(context.Background(), "luigi", "mario@example.com", "hunter2")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}
