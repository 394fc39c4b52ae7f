// Package duedate computes display urgency from due and start dates.
// Everything here is pure: the same two instants always classify the
// same way, and nothing in this package feeds back into stored state.
package duedate

import (
	"fmt"
	"strings"
	"time"
)

type Urgency string

const (
	Overdue  Urgency = "overdue"
	DueToday Urgency = "due_today"
	DueSoon  Urgency = "due_soon"
	Normal   Urgency = "normal"
)

// Classify buckets date relative to now by whole calendar days, both
// truncated to midnight. 1-2 days ahead is DueSoon; exactly 3 is
// already Normal.
func Classify(date, now time.Time) Urgency {
	days := daysBetween(now, date)
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days <= 2:
		return DueSoon
	default:
		return Normal
	}
}

// OverdueDuration is how far past due a task is, for the human
// readable "overdue by" string only.
type OverdueDuration struct {
	Days    int
	Hours   int
	Minutes int
}

func (d OverdueDuration) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0
}

// String renders like "2d 3h 10m", omitting leading zero units.
func (d OverdueDuration) String() string {
	var b strings.Builder
	if d.Days > 0 {
		fmt.Fprintf(&b, "%dd ", d.Days)
	}
	if d.Hours > 0 || d.Days > 0 {
		fmt.Fprintf(&b, "%dh ", d.Hours)
	}
	fmt.Fprintf(&b, "%dm", d.Minutes)
	return b.String()
}

// OverdueBy returns the elapsed time past due, or a zero duration when
// now is not past due.
func OverdueBy(due, now time.Time) OverdueDuration {
	diff := now.Sub(due)
	if diff <= 0 {
		return OverdueDuration{}
	}
	return OverdueDuration{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
	}
}

// FormatExpectedMinutes renders an estimate like "1h 30m".
func FormatExpectedMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}
