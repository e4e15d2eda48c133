package amqp

import (
	"encoding/json"
	"time"
)

const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage notifies downstream consumers that an expense was
// created or deleted. It carries enough to recompute aggregates without
// a second round trip for the common cases.
type ExpenseEventMessage struct {
	Event       string    `json:"event"`
	ExpenseID   string    `json:"expense_id"`
	OwnerID     string    `json:"owner_id"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(event, expenseID, ownerID string, amountCents int64, date string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Event:       event,
		ExpenseID:   expenseID,
		OwnerID:     ownerID,
		AmountCents: amountCents,
		Date:        date,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
