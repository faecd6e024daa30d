package models

import (
	"fmt"
	"strings"
)

// Day is a day of the week as stored in calendar intervals.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// dayOrder gives the ISO weekday position, Monday first.
var dayOrder = map[Day]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// DayFromString parses a day name case-insensitively.
func DayFromString(s string) (Day, error) {
	switch strings.ToLower(s) {
	case "monday":
		return Monday, nil
	case "tuesday":
		return Tuesday, nil
	case "wednesday":
		return Wednesday, nil
	case "thursday":
		return Thursday, nil
	case "friday":
		return Friday, nil
	case "saturday":
		return Saturday, nil
	case "sunday":
		return Sunday, nil
	}
	return "", fmt.Errorf("unknown day of week: %q", s)
}

// Order returns the weekday position, Monday = 1 through Sunday = 7.
// Zero means the value is not a valid Day.
func (d Day) Order() int {
	return dayOrder[d]
}

// Valid reports whether d is one of the seven weekday values.
func (d Day) Valid() bool {
	_, ok := dayOrder[d]
	return ok
}
