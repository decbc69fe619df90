package repository

import (
	"context"

	"timesheet-api/internal/domain"
)

// HotelRepository persists hotels. Reads and mutations are keyed by owner.
type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) (int64, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Hotel, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hotel, error)
	UpdateForOwner(ctx context.Context, hotel *domain.Hotel) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}
