// Package due classifies task due dates relative to today.
package due

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the on-disk date format.
const Layout = "2006-01-02"

// SoonDays is the last day offset still counted as "soon".
const SoonDays = 7

// Kind is a due-date bucket.
type Kind int

const (
	NoDate Kind = iota
	Overdue
	Today
	Tomorrow
	Soon
	Later
)

var kindNames = [...]string{
	NoDate:   "No date",
	Overdue:  "Overdue",
	Today:    "Today",
	Tomorrow: "Tomorrow",
	Soon:     "Soon",
	Later:    "Later",
}

var kindTags = [...]string{
	NoDate:   "nodate",
	Overdue:  "overdue",
	Today:    "today",
	Tomorrow: "tomorrow",
	Soon:     "soon",
	Later:    "later",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("due.Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Tag is the style key renderers use to pick a color.
func (k Kind) Tag() string {
	if k < 0 || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

// Bucket is the classification of one due date.
type Bucket struct {
	Kind  Kind
	Label string // relative text, e.g. "Due in 3 days"
	Days  int    // day difference from today; zero for NoDate
}

// Tag returns the bucket's style tag.
func (b Bucket) Tag() string { return b.Kind.Tag() }

// Parse reads a yyyy-mm-dd date at midnight in loc.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether s is a well-formed yyyy-mm-dd date.
func Valid(s string) bool {
	_, ok := Parse(s, time.UTC)
	return ok
}

// Format renders t as yyyy-mm-dd.
func Format(t time.Time) string { return t.Format(Layout) }

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from `from` to `to`, ignoring time of
// day. It works on y/m/d so DST transitions do not produce off-by-one results,
// and on Unix seconds so far-off years do not saturate time.Duration.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / 86400)
}

// Diff returns the day difference between today and date, and false when the
// date is absent or malformed.
func Diff(date string, today time.Time) (int, bool) {
	t, ok := Parse(date, today.Location())
	if !ok {
		return 0, false
	}
	return DaysBetween(today, t), true
}

// ComputeBucket maps a stored date string to its bucket. A malformed date is
// treated as no date.
func ComputeBucket(date string, today time.Time) Bucket {
	days, ok := Diff(date, today)
	if !ok {
		return Bucket{Kind: NoDate, Label: NoDate.String()}
	}
	switch {
	case days < 0:
		return Bucket{Kind: Overdue, Days: days, Label: "Overdue by " + plural(-days, "day")}
	case days == 0:
		return Bucket{Kind: Today, Label: "Due today"}
	case days == 1:
		return Bucket{Kind: Tomorrow, Days: 1, Label: "Due tomorrow"}
	case days <= SoonDays:
		return Bucket{Kind: Soon, Days: days, Label: fmt.Sprintf("Due in %d days", days)}
	default:
		t, _ := Parse(date, today.Location())
		return Bucket{Kind: Later, Days: days, Label: "Due " + t.Format("Mon 2 Jan")}
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
