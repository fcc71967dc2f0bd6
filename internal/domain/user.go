package domain

import "time"

// Usuario represents a registered account holder.
type Usuario struct {
	ID           int64
	Nombre       string
	Usuario      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
