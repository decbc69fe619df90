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

type HotelRepository struct {
	db *sql.DB
}

func NewHotelRepository(db *sql.DB) repository.HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) (int64, error) {
	now := time.Now().UTC()
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO hotels (name, address, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		hotel.Name,
		hotel.Address,
		hotel.OwnerID,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("insert hotel: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("hotel last insert id: %w", err)
	}
	hotel.ID = id
	return id, nil
}

func (r *HotelRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, address, owner_id, created_at, updated_at
FROM hotels
WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanHotel(row)
}

func (r *HotelRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, address, owner_id, created_at, updated_at
FROM hotels
WHERE owner_id = ?
ORDER BY name ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	hotels := []domain.Hotel{}
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, *hotel)
	}

	return hotels, rows.Err()
}

func (r *HotelRepository) UpdateForOwner(ctx context.Context, hotel *domain.Hotel) error {
	hotel.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE hotels
SET name=?, address=?, updated_at=?
WHERE id=? AND owner_id=?`,
		hotel.Name,
		hotel.Address,
		hotel.UpdatedAt,
		hotel.ID,
		hotel.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("hotel update rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func (r *HotelRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete hotel: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("hotel delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func scanHotel(row scanner) (*domain.Hotel, error) {
	var hotel domain.Hotel
	if err := row.Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.Address,
		&hotel.OwnerID,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("scan hotel: %w", err)
	}
	return &hotel, nil
}
