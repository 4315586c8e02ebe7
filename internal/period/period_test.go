package period

import (
	"testing"
	"time"

	"spendwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func records(dates ...string) []models.Record {
	out := make([]models.Record, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.Record{ID: d, Date: at(d), Amount: 1, Category: "Food"})
	}
	return out
}

func ids(recs []models.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestSelectScenario(t *testing.T) {
	recs := records("2024-01-01T10:00", "2024-01-15T10:00", "2024-02-01T10:00")
	now := at("2024-01-20T00:00")

	assert.Equal(t, []string{"2024-01-01T10:00", "2024-01-15T10:00"}, ids(Select(recs[:2], Monthly, now)))
	assert.Empty(t, Select(recs[:2], Daily, now))

	// No upper bound: the February record is kept by every window it starts after.
	assert.Equal(t, []string{"2024-01-01T10:00", "2024-01-15T10:00", "2024-02-01T10:00"}, ids(Select(recs, Monthly, now)))
	assert.Equal(t, []string{"2024-02-01T10:00"}, ids(Select(recs, Daily, now)))
}

func TestSelectWeeklyStartsSunday(t *testing.T) {
	// 2024-01-17 is a Wednesday; the week began on Sunday 2024-01-14.
	now := at("2024-01-17T15:00")
	recs := records("2024-01-13T23:59", "2024-01-14T00:00", "2024-01-16T12:00")

	assert.Equal(t, []string{"2024-01-14T00:00", "2024-01-16T12:00"}, ids(Select(recs, Weekly, now)))
}

func TestSelectWeeklyOnSunday(t *testing.T) {
	now := at("2024-01-14T08:00")
	recs := records("2024-01-13T22:00", "2024-01-14T01:00")
	assert.Equal(t, []string{"2024-01-14T01:00"}, ids(Select(recs, Weekly, now)))
}

func TestSelectWeeklyAcrossMonthBoundary(t *testing.T) {
	// Thursday 2024-02-01; week began Sunday 2024-01-28.
	start, ok := Start(Weekly, at("2024-02-01T12:00"))
	require.True(t, ok)
	assert.Equal(t, at("2024-01-28T00:00"), start)
}

func TestSelectDailyBoundary(t *testing.T) {
	now := at("2024-03-05T18:00")
	recs := records("2024-03-04T23:59", "2024-03-05T00:00")
	assert.Equal(t, []string{"2024-03-05T00:00"}, ids(Select(recs, Daily, now)))
}

func TestSelectAll(t *testing.T) {
	recs := records("1999-01-01T00:00", "2024-01-01T00:00")
	assert.Len(t, Select(recs, All, at("2024-01-20T00:00")), 2)
	assert.Len(t, Select(recs, Period("fortnightly"), at("2024-01-20T00:00")), 2)
}

func TestSelectUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2024, 1, 20, 2, 0, 0, 0, loc)
	start, ok := Start(Daily, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 19, 19, 0, 0, 0, time.UTC), start.UTC())
}

func TestSelectIsPure(t *testing.T) {
	recs := records("2024-01-01T10:00", "2024-01-15T10:00")
	now := at("2024-01-15T12:00")
	first := Select(recs, Daily, now)
	second := Select(recs, Daily, now)
	assert.Equal(t, first, second)
	assert.Len(t, recs, 2)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Daily, Parse("daily"))
	assert.Equal(t, Weekly, Parse(" WEEKLY "))
	assert.Equal(t, Monthly, Parse("Monthly"))
	assert.Equal(t, All, Parse("all"))
	assert.Equal(t, All, Parse(""))
	assert.Equal(t, All, Parse("yearly"))
	assert.Equal(t, "Weekly", Weekly.Title())
}

func TestBetween(t *testing.T) {
	recs := records("2024-01-09T23:59", "2024-01-10T00:00", "2024-01-12T23:59", "2024-01-13T00:00")
	got := Between(recs, at("2024-01-10T15:00"), at("2024-01-12T01:00"))
	assert.Equal(t, []string{"2024-01-10T00:00", "2024-01-12T23:59"}, ids(got))

	assert.Empty(t, Between(recs, at("2024-01-12T00:00"), at("2024-01-10T00:00")), "inverted range")

	single := Between(recs, at("2024-01-13T00:00"), at("2024-01-13T00:00"))
	assert.Equal(t, []string{"2024-01-13T00:00"}, ids(single))
}
