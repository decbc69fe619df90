package repository

import (
	"context"

	"timesheet-api/internal/domain"
)

// TimesheetRepository persists timesheet entries. Lookups and mutations are keyed by
// (id, userID) in a single statement so that a foreign row looks exactly like a missing one.
type TimesheetRepository interface {
	Create(ctx context.Context, sheet *domain.Timesheet) (int64, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Timesheet, error)
	ListByUser(ctx context.Context, userID int64, filter domain.TimesheetFilter) ([]domain.Timesheet, error)
	UpdateForUser(ctx context.Context, sheet *domain.Timesheet) error
	DeleteForUser(ctx context.Context, id, userID int64) error
}
