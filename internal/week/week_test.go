package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

func TestStart_MatchesISOWeek(t *testing.T) {
	for _, tc := range []struct {
		week, year int
		want       time.Time
	}{
		{1, 2026, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)},
		{10, 2026, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{53, 2026, time.Date(2026, time.December, 28, 0, 0, 0, 0, time.UTC)},
		{1, 2025, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)},
	} {
		got := Start(tc.week, tc.year)
		assert.Equal(t, tc.want, got, "week %d/%d", tc.week, tc.year)
		assert.Equal(t, time.Monday, got.Weekday())

		isoYear, isoWeek := got.ISOWeek()
		assert.Equal(t, tc.week, isoWeek)
		assert.Equal(t, tc.year, isoYear)
	}
}

func TestEnd_IsJustBeforeNextMonday(t *testing.T) {
	end := End(10, 2026)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.True(t, end.Before(Start(11, 2026)))
	assert.Equal(t, time.Nanosecond, Start(11, 2026).Sub(end))
}

func TestPrevious(t *testing.T) {
	w, y := Previous(10, 2026)
	assert.Equal(t, 9, w)
	assert.Equal(t, 2026, y)

	// 2026 has 53 ISO weeks.
	w, y = Previous(1, 2027)
	assert.Equal(t, 53, w)
	assert.Equal(t, 2026, y)

	// 2024 has 52.
	w, y = Previous(1, 2025)
	assert.Equal(t, 52, w)
	assert.Equal(t, 2024, y)
}

func TestWeeksInMonth(t *testing.T) {
	// August 2026: Mondays on the 3rd, 10th, 17th, 24th, 31st.
	weeks := WeeksInMonth(time.August, 2026)
	assert.Len(t, weeks, 5)
	assert.Equal(t, domain.WeekRef{Week: 32, Year: 2026}, weeks[0])
	assert.Equal(t, domain.WeekRef{Week: 36, Year: 2026}, weeks[4])

	// Every listed week's Monday must be inside the month.
	for _, ref := range weeks {
		assert.Equal(t, time.August, Start(ref.Week, ref.Year).Month())
	}
}

func TestWeeksInMonth_Disjoint(t *testing.T) {
	// Consecutive months never share a week.
	seen := map[domain.WeekRef]time.Month{}
	for month := time.January; month <= time.December; month++ {
		for _, ref := range WeeksInMonth(month, 2026) {
			if prior, ok := seen[ref]; ok {
				t.Fatalf("week %v claimed by both %s and %s", ref, prior, month)
			}
			seen[ref] = month
		}
	}
}

func TestMonthElapsed(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	assert.True(t, MonthElapsed(time.July, 2026, now))
	assert.False(t, MonthElapsed(time.August, 2026, now))
	assert.False(t, MonthElapsed(time.September, 2026, now))
}

func TestMonthInFuture(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	assert.False(t, MonthInFuture(time.August, 2026, now))
	assert.True(t, MonthInFuture(time.September, 2026, now))
	assert.True(t, MonthInFuture(time.January, 2027, now))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(1, 2026))
	assert.True(t, Valid(53, 2026))
	assert.False(t, Valid(53, 2024))
	assert.False(t, Valid(0, 2026))
	assert.False(t, Valid(54, 2026))
	assert.False(t, Valid(10, 1990))
}
