// Package calendar provides whole-day date arithmetic for the agenda and
// reciprocity engines. All functions are pure and operate on civil dates;
// time-of-day and timezones are out of scope.
package calendar

import (
	"time"

	"github.com/amity-app/amity/pkg/models"
)

// DayDifference returns the number of whole days from one date to another.
// Positive when to is after from. Both inputs are normalized to midnight
// UTC before subtracting, so the result is exact across DST and leap days.
func DayDifference(from, to models.Date) int {
	f := models.DateOf(from.Time)
	t := models.DateOf(to.Time)
	return int(t.Sub(f.Time).Hours() / 24)
}

// WithYear returns the same month/day as d in the given year.
//
// A February 29 anchor in a non-leap target year is clamped to February 28.
// This is the single place that policy lives; every recurrence computation
// goes through it so leap-day handling never diverges between call sites.
func WithYear(d models.Date, year int) models.Date {
	month, day := d.Month(), d.Day()
	if month == time.February && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return models.NewDate(year, month, day)
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
