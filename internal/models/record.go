package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind distinguishes expense records from income records.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindExpense:
		return KindExpense, nil
	case KindIncome:
		return KindIncome, nil
	}
	return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", s)}
}

// Record represents a single expense or income entry.
type Record struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	OwnerID     string    `json:"userId"`
}

// Validate checks the user-editable fields of a record against the rules for kind.
func (r Record) Validate(kind Kind) error {
	if strings.TrimSpace(r.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	if !IsAllowedCategory(kind, r.Category) {
		return &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is not a valid %s category", r.Category, kind),
		}
	}
	return nil
}

// ValidateAmount reports whether amount is a positive finite number.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}
