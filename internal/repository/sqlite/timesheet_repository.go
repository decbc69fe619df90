package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
)

const timesheetColumns = `
t.id, t.user_id, t.project_id, t.date, t.hours, t.note, t.created_at, t.updated_at,
p.id, p.name, p.description, p.owner_id, p.created_at`

type TimesheetRepository struct {
	db *sql.DB
}

func NewTimesheetRepository(db *sql.DB) repository.TimesheetRepository {
	return &TimesheetRepository{db: db}
}

func (r *TimesheetRepository) Create(ctx context.Context, sheet *domain.Timesheet) (int64, error) {
	now := time.Now().UTC()
	sheet.CreatedAt = now
	sheet.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO timesheets (user_id, project_id, date, hours, note, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sheet.UserID,
		sheet.ProjectID,
		domain.FormatDate(sheet.Date),
		sheet.Hours,
		sheet.Note,
		sheet.CreatedAt,
		sheet.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.NewValidationError("project does not exist")
		}
		return 0, fmt.Errorf("insert timesheet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("timesheet last insert id: %w", err)
	}
	sheet.ID = id
	return id, nil
}

func (r *TimesheetRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Timesheet, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT`+timesheetColumns+`
FROM timesheets t
JOIN projects p ON p.id = t.project_id
WHERE t.id = ? AND t.user_id = ?`,
		id,
		userID,
	)
	return scanTimesheet(row)
}

func (r *TimesheetRepository) ListByUser(ctx context.Context, userID int64, filter domain.TimesheetFilter) ([]domain.Timesheet, error) {
	conditions := []string{"t.user_id = ?"}
	args := []any{userID}
	if filter.ProjectID > 0 {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.From != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, domain.FormatDate(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, domain.FormatDate(*filter.To))
	}

	query := fmt.Sprintf(`
SELECT%s
FROM timesheets t
JOIN projects p ON p.id = t.project_id
WHERE %s
ORDER BY t.date DESC, t.id DESC`, timesheetColumns, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query timesheets: %w", err)
	}
	defer rows.Close()

	sheets := []domain.Timesheet{}
	for rows.Next() {
		sheet, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *sheet)
	}

	return sheets, rows.Err()
}

// UpdateForUser rewrites an entry only when both id and owner match.
func (r *TimesheetRepository) UpdateForUser(ctx context.Context, sheet *domain.Timesheet) error {
	sheet.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE timesheets
SET project_id=?, date=?, hours=?, note=?, updated_at=?
WHERE id=? AND user_id=?`,
		sheet.ProjectID,
		domain.FormatDate(sheet.Date),
		sheet.Hours,
		sheet.Note,
		sheet.UpdatedAt,
		sheet.ID,
		sheet.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("project does not exist")
		}
		return fmt.Errorf("update timesheet: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("timesheet update rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrTimesheetNotFound
	}
	return nil
}

func (r *TimesheetRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete timesheet: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("timesheet delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrTimesheetNotFound
	}
	return nil
}

func scanTimesheet(row scanner) (*domain.Timesheet, error) {
	var (
		sheet   domain.Timesheet
		project domain.Project
		date    string
	)

	if err := row.Scan(
		&sheet.ID,
		&sheet.UserID,
		&sheet.ProjectID,
		&date,
		&sheet.Hours,
		&sheet.Note,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&project.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("scan timesheet: %w", err)
	}

	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse timesheet date %q: %w", date, err)
	}
	sheet.Date = parsed
	sheet.Project = &project

	return &sheet, nil
}
