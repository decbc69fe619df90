package repository

import (
	"context"

	"timesheet-api/internal/domain"
)

// ProjectRepository persists projects. Every read is scoped to an owner.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
}
