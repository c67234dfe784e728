// Package schedule holds the pure scheduling-conflict arithmetic used by
// roster validation: closed-interval date-range overlap and buffered
// time-of-day window overlap.
package schedule

import (
	"fmt"
	"time"
)

// Time-of-day values are anchored to a fixed date so window arithmetic
// never crosses a real calendar boundary.
var (
	anchor    = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	anchorEnd = anchor.Add(24*time.Hour - time.Nanosecond)
)

const (
	clockLayout   = "15:04:05"
	clock12Layout = "3:04 PM"
	dateLayout    = "2006-01-02"
)

// ParseTimeOfDay parses a "15:04:05" (or "15:04") string into a time on
// the anchor date.
func ParseTimeOfDay(s string) (time.Time, error) {
	for _, layout := range []string{clockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return anchored(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}

// ParseClock12 parses a 12-hour clock string such as "9:00 AM" into a
// time on the anchor date. Used by the CSV import format.
func ParseClock12(s string) (time.Time, error) {
	t, err := time.Parse(clock12Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return anchored(t), nil
}

// FormatTimeOfDay renders an anchored time back to "15:04:05".
func FormatTimeOfDay(t time.Time) string {
	return t.Format(clockLayout)
}

// ParseDate parses a "2006-01-02" date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func anchored(t time.Time) time.Time {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// DateRangesOverlap reports whether two closed date ranges intersect.
func DateRangesOverlap(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !startB.After(endA)
}

// TimeWindowsOverlap reports whether two closed time-of-day windows
// intersect: true when any endpoint of one window falls within the span
// of the other. The test is symmetric.
func TimeWindowsOverlap(s1, e1, s2, e2 time.Time) bool {
	return within(s2, s1, e1) ||
		within(e2, s1, e1) ||
		within(s1, s2, e2) ||
		within(e1, s2, e2)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// BufferWindow widens a slot by the configured turnaround buffer:
// the buffer is subtracted from the start and added to the end. The
// result is clamped to the anchor day so a buffer reaching past midnight
// cannot produce an inverted window.
func BufferWindow(start, end time.Time, buffer time.Duration) (time.Time, time.Time) {
	s := start.Add(-buffer)
	e := end.Add(buffer)
	if s.Before(anchor) {
		s = anchor
	}
	if e.After(anchorEnd) {
		e = anchorEnd
	}
	return s, e
}

// Assignment is the scheduling footprint of a roster: a time-of-day slot
// repeated over a date range. Slot times must be anchored values.
type Assignment struct {
	StartDate time.Time
	EndDate   time.Time
	SlotStart time.Time
	SlotEnd   time.Time
}

// Conflicts reports whether a candidate assignment collides with an
// existing one. The candidate's slot is widened by buffer before the
// comparison; the existing slot is compared as stored.
func Conflicts(candidate, existing Assignment, buffer time.Duration) bool {
	if !DateRangesOverlap(existing.StartDate, existing.EndDate, candidate.StartDate, candidate.EndDate) {
		return false
	}
	start, end := BufferWindow(candidate.SlotStart, candidate.SlotEnd, buffer)
	return TimeWindowsOverlap(existing.SlotStart, existing.SlotEnd, start, end)
}
