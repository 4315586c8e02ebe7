// Package stats aggregates records into totals, category breakdowns and
// chart series.
package stats

import (
	"strings"

	"spendwise/internal/models"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   float64
	Count    int
}

// Breakdown lists category totals in order of each category's first appearance.
type Breakdown []CategoryTotal

// Map returns the breakdown keyed by category.
func (b Breakdown) Map() map[string]float64 {
	m := make(map[string]float64, len(b))
	for _, ct := range b {
		m[ct.Category] = ct.Amount
	}
	return m
}

// Total sums the breakdown amounts.
func (b Breakdown) Total() float64 {
	var total float64
	for _, ct := range b {
		total += ct.Amount
	}
	return total
}

// GroupByCategory sums amounts per category. Records with an empty category
// are counted under Other.
func GroupByCategory(records []models.Record) Breakdown {
	var out Breakdown
	index := make(map[string]int)
	for _, r := range records {
		cat := strings.TrimSpace(r.Category)
		if cat == "" {
			cat = models.CategoryOther
		}
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryTotal{Category: cat})
		}
		out[i].Amount += r.Amount
		out[i].Count++
	}
	return out
}

// Total sums the amounts of records. It is 0 for no records.
func Total(records []models.Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// NetBalance is income minus expense. A negative result is a deficit.
func NetBalance(totalIncome, totalExpense float64) float64 {
	return totalIncome - totalExpense
}

// Summary holds the headline figures of a window.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Net          float64
	Expenses     Breakdown
	Incomes      Breakdown
}

// Surplus reports whether income covered expenses.
func (s Summary) Surplus() bool {
	return s.Net >= 0
}

// Summarize aggregates already filtered expense and income records.
func Summarize(expenses, incomes []models.Record) Summary {
	income := Total(incomes)
	expense := Total(expenses)
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          NetBalance(income, expense),
		Expenses:     GroupByCategory(expenses),
		Incomes:      GroupByCategory(incomes),
	}
}
