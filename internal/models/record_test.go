package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidate(t *testing.T) {
	valid := Record{Description: "Lunch", Amount: 12.5, Category: "Food"}

	tests := []struct {
		name    string
		kind    Kind
		mutate  func(r *Record)
		wantErr string
	}{
		{name: "valid expense", kind: KindExpense, mutate: func(r *Record) {}},
		{name: "valid income", kind: KindIncome, mutate: func(r *Record) { r.Category = "Salary" }},
		{name: "empty description", kind: KindExpense, mutate: func(r *Record) { r.Description = "  " }, wantErr: "description"},
		{name: "zero amount", kind: KindExpense, mutate: func(r *Record) { r.Amount = 0 }, wantErr: "amount"},
		{name: "negative amount", kind: KindExpense, mutate: func(r *Record) { r.Amount = -3 }, wantErr: "amount"},
		{name: "NaN amount", kind: KindExpense, mutate: func(r *Record) { r.Amount = math.NaN() }, wantErr: "amount"},
		{name: "infinite amount", kind: KindExpense, mutate: func(r *Record) { r.Amount = math.Inf(1) }, wantErr: "amount"},
		{name: "income category on expense", kind: KindExpense, mutate: func(r *Record) { r.Category = "Salary" }, wantErr: "category"},
		{name: "expense category on income", kind: KindIncome, mutate: func(r *Record) { r.Category = "Food" }, wantErr: "category"},
		{name: "missing category", kind: KindExpense, mutate: func(r *Record) { r.Category = "" }, wantErr: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate(tt.kind)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantErr, ve.Field)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Income ")
	require.NoError(t, err)
	assert.Equal(t, KindIncome, k)

	k, err = ParseKind("expense")
	require.NoError(t, err)
	assert.Equal(t, KindExpense, k)

	_, err = ParseKind("transfer")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories(KindExpense), 10)
	assert.Equal(t, []string{"Salary", "Freelance", "Investment", "Gift", "Refund", "Other"}, Categories(KindIncome))
	assert.Nil(t, Categories(Kind("bogus")))

	// Callers must not be able to alter the permitted set.
	cats := Categories(KindExpense)
	cats[0] = "Yachts"
	assert.False(t, IsAllowedCategory(KindExpense, "Yachts"))
	assert.True(t, IsAllowedCategory(KindExpense, "Food"))

	assert.Equal(t, "Food", DefaultCategory(KindExpense))
	assert.Equal(t, "Salary", DefaultCategory(KindIncome))
}

func TestUserPublic(t *testing.T) {
	u := User{ID: "1", Email: "a@b.c", PasswordHash: "secret"}
	assert.Empty(t, u.Public().PasswordHash)
	assert.Equal(t, "secret", u.PasswordHash)
	assert.Equal(t, "1", Session{User: u}.OwnerID())
}
