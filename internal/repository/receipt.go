package repository

import (
	"context"

	"timesheet-api/internal/domain"
)

// ReceiptRepository stores metadata for receipt objects.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) (int64, error)
	ListByTimesheet(ctx context.Context, timesheetID, userID int64) ([]domain.Receipt, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Receipt, error)
}
