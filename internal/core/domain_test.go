package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"Income", Income, true},
		{"expense", Expense, true},
		{" INCOME ", Income, true},
		{"Transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidType) {
			t.Fatalf("%q expected ErrInvalidType, got %v", tc.in, err)
		}
	}
}

func TestDraftParse(t *testing.T) {
	good := Draft{Type: Expense, Amount: "12.50", Category: "Food", Description: "lunch 2024-03-05"}
	tx, err := good.Parse()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	want := Transaction{Type: Expense, Amount: decimal.RequireFromString("12.5"), Category: "Food", Description: "lunch 2024-03-05"}
	if !tx.Equal(want) {
		t.Fatalf("got %+v, want %+v", tx, want)
	}

	bads := []struct {
		d   Draft
		err error
	}{
		{Draft{Type: Income, Amount: "abc", Category: "c"}, ErrInvalidAmount},
		{Draft{Type: Income, Amount: "-5", Category: "c"}, ErrInvalidAmount},
		{Draft{Type: "Gift", Amount: "5", Category: "c"}, ErrInvalidType},
	}
	for i, tc := range bads {
		if _, err := tc.d.Parse(); !errors.Is(err, tc.err) {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestTransactionRecord(t *testing.T) {
	tx := Transaction{Type: Income, Amount: decimal.RequireFromString("100.00"), Category: "Salary", Description: ""}
	got := tx.Record()
	want := []string{"Income", "100", "Salary", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tx.DisplayAmount() != "100.00" {
		t.Fatalf("display amount: %q", tx.DisplayAmount())
	}
}
