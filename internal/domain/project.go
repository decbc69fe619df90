package domain

import "time"

// Project groups timesheet entries and belongs to exactly one owner.
type Project struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
}
