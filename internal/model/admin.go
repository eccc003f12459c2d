package model

import "time"

type AdminUser struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Status       string    `db:"status"` // active|disabled
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (a AdminUser) Active() bool { return a.Status == "active" }
