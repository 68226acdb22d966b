package dateutil

import (
	"time"
)

// GenesisDate is the bitcoin genesis block timestamp, the epoch for all
// power-law day counts.
var GenesisDate = time.Date(2009, 1, 3, 0, 0, 0, 0, time.UTC)

// DaysSinceGenesis returns the number of whole days between the genesis
// block and the given date, clamped to a minimum of 1. The clamp keeps
// fractional-exponent power functions defined for dates at or before genesis.
func DaysSinceGenesis(date time.Time) float64 {
	days := date.Sub(GenesisDate).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// MonthsUntilDate calculates the number of months between two dates
func MonthsUntilDate(fromDate, toDate time.Time) int {
	years := YearsUntilDate(fromDate, toDate)
	return int(years * 12)
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// MidYear returns July 1st of the given calendar year in UTC. Year-granular
// model lookups anchor at mid-year so a whole year's price is not skewed
// toward either boundary.
func MidYear(year int) time.Time {
	return time.Date(year, 7, 1, 0, 0, 0, 0, time.UTC)
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}

// EndOfYear returns the last day of the year for a given date
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 12, 31, 23, 59, 59, 999999999, date.Location())
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
