package amqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	msg := NewExpenseEventMessage(EventExpenseCreated, "exp-1", "acc-1", 2550, "2024-03-15")

	data, err := msg.ToJSON()
	require.NoError(t, err)

	got, err := ExpenseEventMessageFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, EventExpenseCreated, got.Event)
	assert.Equal(t, "exp-1", got.ExpenseID)
	assert.Equal(t, "acc-1", got.OwnerID)
	assert.Equal(t, int64(2550), got.AmountCents)
	assert.Equal(t, "2024-03-15", got.Date)
	assert.False(t, got.Timestamp.IsZero())
}

func TestExpenseEventMessageFromInvalidJSON(t *testing.T) {
	_, err := ExpenseEventMessageFromJSON([]byte("{not json"))
	assert.Error(t, err)
}
