package models

import (
	"fmt"
	"strings"
)

// Weekday identifies a teaching day. The timetable covers a fixed
// Monday-to-Friday week.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

var weekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Weekdays returns the teaching days in week order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdayOrder))
	copy(out, weekdayOrder)
	return out
}

// Index returns the position of the day within the week, or -1 when the
// value is not a teaching day.
func (d Weekday) Index() int {
	for i, day := range weekdayOrder {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether the value is one of the five teaching days.
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// ParseWeekday normalises raw input into a Weekday.
func ParseWeekday(raw string) (Weekday, error) {
	day := Weekday(strings.ToUpper(strings.TrimSpace(raw)))
	if !day.Valid() {
		return "", fmt.Errorf("invalid weekday %q", raw)
	}
	return day, nil
}
