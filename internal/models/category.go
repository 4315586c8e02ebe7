package models

import "slices"

// CategoryOther collects records without a recognised category.
const CategoryOther = "Other"

var expenseCategories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Education",
	"Personal",
	CategoryOther,
}

var incomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	"Gift",
	"Refund",
	CategoryOther,
}

// Categories returns the permitted categories for kind, in display order.
// The returned slice is a copy.
func Categories(kind Kind) []string {
	switch kind {
	case KindExpense:
		return slices.Clone(expenseCategories)
	case KindIncome:
		return slices.Clone(incomeCategories)
	}
	return nil
}

// DefaultCategory is the category preselected for new records of kind.
func DefaultCategory(kind Kind) string {
	if kind == KindIncome {
		return incomeCategories[0]
	}
	return expenseCategories[0]
}

// IsAllowedCategory reports whether category belongs to the set for kind.
// Matching is exact.
func IsAllowedCategory(kind Kind, category string) bool {
	switch kind {
	case KindExpense:
		return slices.Contains(expenseCategories, category)
	case KindIncome:
		return slices.Contains(incomeCategories, category)
	}
	return false
}
