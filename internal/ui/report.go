package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

const barWidth = 40

// RenderReport draws the Income vs Expenses proportion as a two-color bar
// with the totals and percentages beneath it.
func RenderReport(w io.Writer, s core.Summary, th Theme) error {
	var b strings.Builder
	b.WriteString(th.Title.Render("Income vs Expenses"))
	b.WriteString("\n")

	incomeShare, expenseShare := s.Shares()
	if s.Income.Add(s.Expense).IsZero() {
		b.WriteString(th.Muted.Render("No income or expenses recorded yet."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	incomeCells := cells(incomeShare)
	b.WriteString(th.Income.Render(strings.Repeat("█", incomeCells)))
	b.WriteString(th.Expense.Render(strings.Repeat("█", barWidth-incomeCells)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %10s %6s%%\n", th.Income.Render("Income  "), core.FormatMoney(s.Income), incomeShare.StringFixed(1))
	fmt.Fprintf(&b, "%s %10s %6s%%\n", th.Expense.Render("Expenses"), core.FormatMoney(s.Expense), expenseShare.StringFixed(1))
	fmt.Fprintf(&b, "%s %10s\n", th.Muted.Render("Balance "), formatSigned(s.Balance()))

	_, err := io.WriteString(w, b.String())
	return err
}

// cells converts a percentage into a number of bar cells.
func cells(share decimal.Decimal) int {
	n := int(share.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if n < 0 {
		return 0
	}
	if n > barWidth {
		return barWidth
	}
	return n
}

func formatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + core.FormatMoney(d.Neg())
	}
	return core.FormatMoney(d)
}
