package core

import "github.com/shopspring/decimal"

// Summary holds the totals behind the Income vs Expenses report.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Summarize sums amounts per type. Records of any other type are ignored.
func Summarize(records []Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range records {
		switch r.Type {
		case Income:
			s.Income = s.Income.Add(r.Amount)
		case Expense:
			s.Expense = s.Expense.Add(r.Amount)
		}
	}
	return s
}

// Balance returns income minus expenses.
func (s Summary) Balance() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Shares returns the income and expense percentages of the combined total,
// rounded to one decimal place. Both are zero when there is nothing to show.
func (s Summary) Shares() (income, expense decimal.Decimal) {
	total := s.Income.Add(s.Expense)
	if total.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	income = s.Income.Mul(hundred).Div(total).Round(1)
	expense = s.Expense.Mul(hundred).Div(total).Round(1)
	return income, expense
}
