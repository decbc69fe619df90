package domain

import "time"

// Hotel is a place a user stays at while working away. Owned by one user.
type Hotel struct {
	ID        int64
	Name      string
	Address   string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
