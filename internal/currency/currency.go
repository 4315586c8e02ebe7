// Package currency formats reference-currency amounts for display.
package currency

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	// DefaultRate converts the USD reference currency to INR.
	DefaultRate = 83.5
	// DefaultSymbol is the Indian rupee sign.
	DefaultSymbol = "₹"
)

// Present converts amount at rate and prefixes symbol, with exactly two
// decimal places.
func Present(amount, rate float64, symbol string) string {
	return symbol + strconv.FormatFloat(amount*rate, 'f', 2, 64)
}

// Presenter carries a fixed rate and symbol.
type Presenter struct {
	Rate   float64
	Symbol string
}

// Default returns the presenter for DefaultRate and DefaultSymbol.
func Default() Presenter {
	return Presenter{Rate: DefaultRate, Symbol: DefaultSymbol}
}

// Present formats amount with the presenter's rate and symbol.
func (p Presenter) Present(amount float64) string {
	return Present(amount, p.Rate, p.Symbol)
}

// Grouped is like Present but separates thousands, e.g. ₹1,234,567.80.
func (p Presenter) Grouped(amount float64) string {
	return p.Symbol + humanize.FormatFloat("#,###.##", amount*p.Rate)
}
