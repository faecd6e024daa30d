package models

import "fmt"

// Calendar is a named set of weekly availability intervals. Calendars are
// shared by reference: resources and case arrivals point at a calendar id,
// and the calendar itself carries no back-reference to its users. Deleting
// a calendar is always an explicit caller decision.
type Calendar struct {
	ID        int64              `json:"id"`
	Intervals []CalendarInterval `json:"intervals"`
}

// CalendarInterval is one weekly time window within a calendar. Intervals
// are owned by exactly one calendar and are deleted with it.
type CalendarInterval struct {
	ID          int64 `json:"id"`
	CalendarID  int64 `json:"calendar_id"`
	StartDay    Day   `json:"start_day"`
	EndDay      Day   `json:"end_day"`
	StartHour   int   `json:"start_hour"`
	StartMinute int   `json:"start_minute"`
	EndHour     int   `json:"end_hour"`
	EndMinute   int   `json:"end_minute"`
}

// Validate checks the interval invariant: the start day must not come after
// the end day in Monday..Sunday order, and the start time must be strictly
// before the end time.
//
// NOTE: the day comparison rejects week-wrapping intervals such as
// Friday-to-Monday. This matches the stored semantics of existing data and
// is kept deliberately; see DESIGN.md.
func (i CalendarInterval) Validate() error {
	if !i.StartDay.Valid() {
		return fmt.Errorf("invalid start day: %q", i.StartDay)
	}
	if !i.EndDay.Valid() {
		return fmt.Errorf("invalid end day: %q", i.EndDay)
	}
	if i.StartDay.Order() > i.EndDay.Order() {
		return fmt.Errorf("interval start day %s is after end day %s", i.StartDay, i.EndDay)
	}
	if i.StartHour < 0 || i.StartHour > 23 || i.EndHour < 0 || i.EndHour > 23 {
		return fmt.Errorf("interval hours out of range: %d-%d", i.StartHour, i.EndHour)
	}
	if i.StartMinute < 0 || i.StartMinute > 59 || i.EndMinute < 0 || i.EndMinute > 59 {
		return fmt.Errorf("interval minutes out of range: %d-%d", i.StartMinute, i.EndMinute)
	}
	start := i.StartHour*60 + i.StartMinute
	end := i.EndHour*60 + i.EndMinute
	if start >= end {
		return fmt.Errorf("interval start time %d:%02d is not before end time %d:%02d",
			i.StartHour, i.StartMinute, i.EndHour, i.EndMinute)
	}
	return nil
}
