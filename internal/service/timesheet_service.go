package service

import (
	"context"
	"strings"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
)

// MaxHoursPerEntry bounds the hours recorded on a single day.
const MaxHoursPerEntry = 24

// TimesheetInput carries the writable fields of a timesheet entry.
type TimesheetInput struct {
	ProjectID int64
	Date      string
	Hours     float64
	Note      string
}

// TimesheetService manages timesheet entries owned by a user.
type TimesheetService interface {
	List(ctx context.Context, userID int64, filter domain.TimesheetFilter) ([]domain.Timesheet, error)
	Get(ctx context.Context, id, userID int64) (*domain.Timesheet, error)
	Create(ctx context.Context, userID int64, in TimesheetInput) (*domain.Timesheet, error)
	Update(ctx context.Context, id, userID int64, in TimesheetInput) (*domain.Timesheet, error)
	Delete(ctx context.Context, id, userID int64) error
}

type timesheetService struct {
	timesheets repository.TimesheetRepository
}

func NewTimesheetService(timesheets repository.TimesheetRepository) TimesheetService {
	return &timesheetService{timesheets: timesheets}
}

func (s *timesheetService) List(ctx context.Context, userID int64, filter domain.TimesheetFilter) ([]domain.Timesheet, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.NewValidationError("from must not be after to")
	}
	return s.timesheets.ListByUser(ctx, userID, filter)
}

func (s *timesheetService) Get(ctx context.Context, id, userID int64) (*domain.Timesheet, error) {
	return s.timesheets.GetForUser(ctx, id, userID)
}

func (s *timesheetService) Create(ctx context.Context, userID int64, in TimesheetInput) (*domain.Timesheet, error) {
	sheet, err := buildTimesheet(userID, in)
	if err != nil {
		return nil, err
	}
	id, err := s.timesheets.Create(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return s.timesheets.GetForUser(ctx, id, userID)
}

func (s *timesheetService) Update(ctx context.Context, id, userID int64, in TimesheetInput) (*domain.Timesheet, error) {
	sheet, err := buildTimesheet(userID, in)
	if err != nil {
		return nil, err
	}
	sheet.ID = id
	if err := s.timesheets.UpdateForUser(ctx, sheet); err != nil {
		return nil, err
	}
	return s.timesheets.GetForUser(ctx, id, userID)
}

func (s *timesheetService) Delete(ctx context.Context, id, userID int64) error {
	return s.timesheets.DeleteForUser(ctx, id, userID)
}

func buildTimesheet(userID int64, in TimesheetInput) (*domain.Timesheet, error) {
	if in.ProjectID <= 0 {
		return nil, domain.NewValidationError("projectId is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, domain.NewValidationError("date is required")
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date must be YYYY-MM-DD")
	}
	if in.Hours < 0 || in.Hours > MaxHoursPerEntry {
		return nil, domain.NewValidationError("hours must be between 0 and 24")
	}

	return &domain.Timesheet{
		UserID:    userID,
		ProjectID: in.ProjectID,
		Date:      date,
		Hours:     in.Hours,
		Note:      strings.TrimSpace(in.Note),
	}, nil
}
