package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// Header is the fixed first row of the transaction file.
var Header = []string{"Type", "Amount", "Category", "Description"}

type (
	TransactionType string

	// Transaction is one persisted income or expense entry.
	Transaction struct {
		Type        TransactionType
		Amount      decimal.Decimal
		Category    string
		Description string
	}

	// Draft holds the raw add-form input before validation.
	Draft struct {
		Type        TransactionType
		Amount      string
		Category    string
		Description string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrStoreMissing     = errors.New("transaction file not found")
	ErrConfigCorrupt    = errors.New("settings file is corrupt")
	ErrInvalidSelection = errors.New("invalid month/year selection")
)

// ParseTransactionType accepts "Income" or "Expense" in any letter case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(Income)):
		return Income, nil
	case strings.EqualFold(strings.TrimSpace(s), string(Expense)):
		return Expense, nil
	}
	return "", ErrInvalidType
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// Parse validates the draft and converts it into a Transaction.
func (d Draft) Parse() (Transaction, error) {
	if err := d.Type.Validate(); err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Type:        d.Type,
		Amount:      amount,
		Category:    d.Category,
		Description: d.Description,
	}, nil
}

// Equal compares amounts by value so that "12.50" and "12.5" match.
func (t Transaction) Equal(o Transaction) bool {
	return t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Description == o.Description
}

// DisplayAmount renders the amount with two fractional digits.
func (t Transaction) DisplayAmount() string {
	return t.Amount.StringFixed(2)
}

// Record returns the row written to the transaction file.
func (t Transaction) Record() []string {
	return []string{string(t.Type), t.Amount.String(), t.Category, t.Description}
}
