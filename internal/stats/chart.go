package stats

import "math"

// FallbackColor is used for categories without an assigned color.
const FallbackColor = "#808080"

var categoryColors = map[string]string{
	"Food":           "#FF6384",
	"Transportation": "#36A2EB",
	"Housing":        "#FFCE56",
	"Utilities":      "#4BC0C0",
	"Entertainment":  "#9966FF",
	"Healthcare":     "#FF9F40",
	"Shopping":       "#8AC926",
	"Education":      "#1982C4",
	"Personal":       "#6A4C93",
	"Other":          "#C9CBA3",
}

// CategoryColor returns the display color of category.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return FallbackColor
}

// Slice is one segment of a proportional chart.
type Slice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Color    string  `json:"color"`
	// Percentage is the rounded share of the grand total; nil when the
	// total is zero.
	Percentage *int `json:"percentage,omitempty"`
}

// ProjectForChart turns a breakdown into colored, percentage-annotated
// slices, keeping the breakdown order.
func ProjectForChart(b Breakdown) []Slice {
	total := b.Total()
	out := make([]Slice, 0, len(b))
	for _, ct := range b {
		s := Slice{
			Category: ct.Category,
			Amount:   ct.Amount,
			Color:    CategoryColor(ct.Category),
		}
		if total != 0 {
			pct := int(math.Round(ct.Amount / total * 100))
			s.Percentage = &pct
		}
		out = append(out, s)
	}
	return out
}
