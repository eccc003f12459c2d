package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticator checks admin credentials and resolves session tokens.
type Authenticator struct {
	admins   repository.AdminsRepository
	sessions *Store
}

func NewAuthenticator(admins repository.AdminsRepository, sessions *Store) *Authenticator {
	return &Authenticator{admins: admins, sessions: sessions}
}

func (a *Authenticator) Sessions() *Store { return a.sessions }

// Login verifies the password and opens a session.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	admin, err := a.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup admin: %w", err)
	}
	if admin == nil || !admin.Active() {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := a.sessions.Create(ctx, admin.ID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Resolve returns the admin behind token, or nil when there is no usable
// session. Sessions of disabled or deleted admins are dropped.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*model.AdminUser, error) {
	id, ok, err := a.sessions.Lookup(ctx, token)
	if err != nil || !ok {
		return nil, err
	}
	admin, err := a.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Active() {
		_ = a.sessions.Delete(ctx, token)
		return nil, nil
	}
	return admin, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// HashPassword returns the bcrypt hash stored for admins.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
