package core

import (
	"errors"
	"testing"
)

func TestFilterByMonthYear(t *testing.T) {
	records := []Transaction{
		{Type: Expense, Category: "Rent", Description: "paid 2024-03-05"},
		{Type: Expense, Category: "Rent", Description: "paid 2024-04-01"},
	}

	got, err := FilterByMonthYear(records, "March", "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Description != "paid 2024-03-05" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterByMonthYear_SubstringAnywhere(t *testing.T) {
	records := []Transaction{
		{Description: "invoice #2024-031"},
		{Description: "2024-03"},
		{Description: "March 2024"},
		{Description: ""},
	}
	got, err := FilterByMonthYear(records, "march", " 2024 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Description != "invoice #2024-031" || got[1].Description != "2024-03" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterByMonthYear_NoMatchIsEmpty(t *testing.T) {
	got, err := FilterByMonthYear([]Transaction{{Description: "paid 2023-12-01"}}, "December", "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFilterByMonthYear_InvalidSelection(t *testing.T) {
	cases := []struct {
		name, month, year string
	}{
		{"empty month", "", "2024"},
		{"empty year", "March", ""},
		{"unknown month", "Marchember", "2024"},
		{"short year", "March", "24"},
		{"non-numeric year", "March", "20x4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FilterByMonthYear(nil, tc.month, tc.year)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	cases := map[string]string{
		"January":   "2024-01",
		"September": "2024-09",
		"December":  "2024-12",
	}
	for month, want := range cases {
		got, err := MonthKey(month, "2024")
		if err != nil || got != want {
			t.Errorf("MonthKey(%q) = %q, %v; want %q", month, got, err, want)
		}
	}
	if len(MonthNames()) != 12 {
		t.Fatalf("expected twelve month names")
	}
}
