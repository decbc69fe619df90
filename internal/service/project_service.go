package service

import (
	"context"
	"strings"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
)

// ProjectService lists and creates projects on behalf of their owner.
type ProjectService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Project, error)
	Create(ctx context.Context, ownerID int64, name, description string) (*domain.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
}

func NewProjectService(projects repository.ProjectRepository) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) List(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *projectService) Create(ctx context.Context, ownerID int64, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	project := &domain.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if _, err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
