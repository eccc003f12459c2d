package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/model"
)

type AdminsRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*model.AdminUser, error)
	Upsert(ctx context.Context, email, name, passwordHash string) error
}

type AdminsRepositoryImpl struct {
	db *sqlx.DB
}

func NewAdminsRepository(db *sqlx.DB) *AdminsRepositoryImpl {
	return &AdminsRepositoryImpl{db: db}
}

var _ AdminsRepository = (*AdminsRepositoryImpl)(nil)

const adminColumns = `id, email, name, password_hash, status, created_at, updated_at`

func (r *AdminsRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE email = ? LIMIT 1`, email)
}

func (r *AdminsRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id = ? LIMIT 1`, id)
}

func (r *AdminsRepositoryImpl) getOne(ctx context.Context, q string, arg any) (*model.AdminUser, error) {
	var a model.AdminUser
	err := r.db.GetContext(ctx, &a, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert creates the admin or resets its name, password and status (idempotent on email).
func (r *AdminsRepositoryImpl) Upsert(ctx context.Context, email, name, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_users (email, name, password_hash, status)
		VALUES (?, ?, ?, 'active')
		ON DUPLICATE KEY UPDATE
		    name          = VALUES(name),
		    password_hash = VALUES(password_hash),
		    status        = 'active'
	`, email, name, passwordHash)
	return err
}
