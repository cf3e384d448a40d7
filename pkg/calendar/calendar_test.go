package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amity-app/amity/pkg/models"
)

func TestDayDifference(t *testing.T) {
	t.Run("should be positive when to is after from", func(t *testing.T) {
		from := models.NewDate(2024, time.March, 1)
		to := models.NewDate(2024, time.March, 10)
		assert.Equal(t, 9, DayDifference(from, to))
	})

	t.Run("should be negative when to is before from", func(t *testing.T) {
		from := models.NewDate(2024, time.January, 1)
		to := models.NewDate(2023, time.January, 1)
		assert.Equal(t, -365, DayDifference(from, to))
	})

	t.Run("should be zero for the same date", func(t *testing.T) {
		d := models.NewDate(2024, time.July, 4)
		assert.Equal(t, 0, DayDifference(d, d))
	})

	t.Run("should count the leap day", func(t *testing.T) {
		from := models.NewDate(2024, time.February, 28)
		to := models.NewDate(2024, time.March, 1)
		assert.Equal(t, 2, DayDifference(from, to))
	})

	t.Run("should ignore time of day", func(t *testing.T) {
		from := models.DateOf(time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC))
		to := models.DateOf(time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC))
		assert.Equal(t, 1, DayDifference(from, to))
	})
}

func TestWithYear(t *testing.T) {
	t.Run("should keep month and day", func(t *testing.T) {
		d := models.NewDate(1990, time.March, 10)
		assert.Equal(t, models.NewDate(2024, time.March, 10), WithYear(d, 2024))
	})

	t.Run("should clamp Feb 29 to Feb 28 in non-leap years", func(t *testing.T) {
		d := models.NewDate(2020, time.February, 29)
		assert.Equal(t, models.NewDate(2023, time.February, 28), WithYear(d, 2023))
	})

	t.Run("should keep Feb 29 in leap years", func(t *testing.T) {
		d := models.NewDate(2020, time.February, 29)
		assert.Equal(t, models.NewDate(2024, time.February, 29), WithYear(d, 2024))
	})
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(2023))
	assert.False(t, IsLeapYear(1900))
}
