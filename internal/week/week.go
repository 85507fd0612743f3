// Package week holds the ISO-8601 week arithmetic shared by the weekly
// pipeline and the monthly aggregator.
package week

import (
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Current returns the ISO week containing now.
func Current(now time.Time) (week, year int) {
	year, week = now.ISOWeek()
	return week, year
}

// Start returns the Monday (00:00 UTC) of the given ISO week.
func Start(weekNum, year int) time.Time {
	// Jan 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, (weekNum-1)*7)
}

// End returns the instant just before the following Monday.
func End(weekNum, year int) time.Time {
	return Start(weekNum, year).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// Previous returns the ISO week before the given one, handling the year
// rollover where the last week may be 52 or 53.
func Previous(weekNum, year int) (int, int) {
	if weekNum > 1 {
		return weekNum - 1, year
	}
	// Dec 28 is always inside the last ISO week of its year.
	lastYear := year - 1
	_, lastWeek := time.Date(lastYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return lastWeek, lastYear
}

// WeeksInMonth lists the ISO weeks whose Monday falls inside the given
// calendar month. Under this rule every week belongs to exactly one month
// even though ISO weeks can straddle month boundaries.
func WeeksInMonth(month time.Month, year int) []domain.WeekRef {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// Walk to the first Monday on or after the 1st.
	offset := (8 - int(first.Weekday())) % 7
	monday := first.AddDate(0, 0, offset)

	var weeks []domain.WeekRef
	for monday.Month() == month {
		isoYear, isoWeek := monday.ISOWeek()
		weeks = append(weeks, domain.WeekRef{Week: isoWeek, Year: isoYear})
		monday = monday.AddDate(0, 0, 7)
	}
	return weeks
}

// MonthElapsed reports whether the calendar month has fully passed as of
// now.
func MonthElapsed(month time.Month, year int, now time.Time) bool {
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return !now.Before(firstOfNext)
}

// MonthInFuture reports whether the calendar month has not started yet.
func MonthInFuture(month time.Month, year int, now time.Time) bool {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return now.Before(first)
}

// Valid reports whether the pair is a plausible ISO week reference.
func Valid(weekNum, year int) bool {
	if year < 2000 || year > 3000 {
		return false
	}
	if weekNum < 1 || weekNum > 53 {
		return false
	}
	if weekNum == 53 {
		// Only years whose Dec 28 lands in week 53 have one.
		_, last := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
		return last == 53
	}
	return true
}
