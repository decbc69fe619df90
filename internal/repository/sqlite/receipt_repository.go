package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
)

type ReceiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) repository.ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) (int64, error) {
	receipt.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO receipts (timesheet_id, user_id, object_key, filename, content_type, size_bytes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		receipt.TimesheetID,
		receipt.UserID,
		receipt.ObjectKey,
		receipt.Filename,
		receipt.ContentType,
		receipt.Size,
		receipt.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrTimesheetNotFound
		}
		return 0, fmt.Errorf("insert receipt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("receipt last insert id: %w", err)
	}
	receipt.ID = id
	return id, nil
}

func (r *ReceiptRepository) ListByTimesheet(ctx context.Context, timesheetID, userID int64) ([]domain.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, timesheet_id, user_id, object_key, filename, content_type, size_bytes, created_at
FROM receipts
WHERE timesheet_id = ? AND user_id = ?
ORDER BY created_at DESC, id DESC`, timesheetID, userID)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *receipt)
	}

	return receipts, rows.Err()
}

func (r *ReceiptRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, timesheet_id, user_id, object_key, filename, content_type, size_bytes, created_at
FROM receipts
WHERE id = ? AND user_id = ?`, id, userID)
	return scanReceipt(row)
}

func scanReceipt(row scanner) (*domain.Receipt, error) {
	var receipt domain.Receipt
	if err := row.Scan(
		&receipt.ID,
		&receipt.TimesheetID,
		&receipt.UserID,
		&receipt.ObjectKey,
		&receipt.Filename,
		&receipt.ContentType,
		&receipt.Size,
		&receipt.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("scan receipt: %w", err)
	}
	return &receipt, nil
}
