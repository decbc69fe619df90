package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a timesheet date.
const DateLayout = "2006-01-02"

// Timesheet is a single day's worth of hours booked against a project.
type Timesheet struct {
	ID        int64
	UserID    int64
	ProjectID int64
	Date      time.Time
	Hours     float64
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Project   *Project
}

// TimesheetFilter narrows a timesheet listing. Zero values disable a constraint.
type TimesheetFilter struct {
	From      *time.Time
	To        *time.Time
	ProjectID int64
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
