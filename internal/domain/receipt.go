package domain

import "time"

// Receipt is a file attached to a timesheet entry and kept in object storage.
type Receipt struct {
	ID          int64
	TimesheetID int64
	UserID      int64
	ObjectKey   string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
