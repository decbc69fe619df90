package service

import (
	"context"
	"strings"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
)

// HotelService manages the hotels a user keeps for work trips.
type HotelService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Hotel, error)
	Create(ctx context.Context, ownerID int64, name, address string) (*domain.Hotel, error)
	Update(ctx context.Context, id, ownerID int64, name, address string) (*domain.Hotel, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

type hotelService struct {
	hotels repository.HotelRepository
}

func NewHotelService(hotels repository.HotelRepository) HotelService {
	return &hotelService{hotels: hotels}
}

func (s *hotelService) List(ctx context.Context, ownerID int64) ([]domain.Hotel, error) {
	return s.hotels.ListByOwner(ctx, ownerID)
}

func (s *hotelService) Create(ctx context.Context, ownerID int64, name, address string) (*domain.Hotel, error) {
	hotel, err := buildHotel(ownerID, name, address)
	if err != nil {
		return nil, err
	}
	if _, err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *hotelService) Update(ctx context.Context, id, ownerID int64, name, address string) (*domain.Hotel, error) {
	hotel, err := buildHotel(ownerID, name, address)
	if err != nil {
		return nil, err
	}
	hotel.ID = id
	if err := s.hotels.UpdateForOwner(ctx, hotel); err != nil {
		return nil, err
	}
	return s.hotels.GetForOwner(ctx, id, ownerID)
}

func (s *hotelService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.hotels.DeleteForOwner(ctx, id, ownerID)
}

func buildHotel(ownerID int64, name, address string) (*domain.Hotel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	return &domain.Hotel{
		Name:    name,
		Address: strings.TrimSpace(address),
		OwnerID: ownerID,
	}, nil
}
