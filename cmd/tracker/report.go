package main

import (
	"fmt"
	"text/tabwriter"

	"spendwise/internal/models"
	"spendwise/internal/period"
	"spendwise/internal/stats"
)

// summary prints the financial overview of a period: income, expenses,
// net balance and the expense breakdown chart data.
func (a *app) summary(args []string) error {
	fs := a.flags("summary")
	periodFlag := fs.String("period", string(period.Daily), "daily, weekly, monthly or all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p := period.Parse(*periodFlag)

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	expenses, err := store.List(models.KindExpense)
	if err != nil {
		return err
	}
	incomes, err := store.List(models.KindIncome)
	if err != nil {
		return err
	}
	now := a.now()
	sum := stats.Summarize(period.Select(expenses, p, now), period.Select(incomes, p, now))

	balance := "surplus"
	if !sum.Surplus() {
		balance = "deficit"
	}

	fmt.Fprintf(a.stdout, "%s overview for %s\n", p.Title(), store.Owner().Name)
	fmt.Fprintf(a.stdout, "  Total Income:   %s\n", a.money.Present(sum.TotalIncome))
	fmt.Fprintf(a.stdout, "  Total Expenses: %s\n", a.money.Present(sum.TotalExpense))
	fmt.Fprintf(a.stdout, "  Net Balance:    %s (%s)\n", a.money.Present(sum.Net), balance)
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "Expense Breakdown")

	slices := stats.ProjectForChart(sum.Expenses)
	if len(slices) == 0 {
		fmt.Fprintln(a.stdout, "  No expenses found for this period.")
		return nil
	}
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, s := range slices {
		pct := "-"
		if s.Percentage != nil {
			pct = fmt.Sprintf("%d%%", *s.Percentage)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", s.Category, a.money.Grouped(s.Amount), pct, s.Color)
	}
	return w.Flush()
}
