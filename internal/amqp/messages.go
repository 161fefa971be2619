package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// TransactionRecordedMessage announces one transaction appended to the ledger.
type TransactionRecordedMessage struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewTransactionRecordedMessage creates a message with a fresh ID.
func NewTransactionRecordedMessage(tx core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:          uuid.NewString(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON decodes a message body
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Transaction converts the message back into a domain record.
func (m *TransactionRecordedMessage) Transaction() core.Transaction {
	return core.Transaction{
		Type:        core.TransactionType(m.Type),
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
	}
}
