package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/minhvu-dev/crm-backend/internal/models"
)

// PostgresStore persists users in Postgres via sqlx. See schema.sql for
// the table definition; email uniqueness is a LOWER(email) unique index.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, full_name, email, phone, company, password_hash,
		       role, is_active, agreed_to_terms, created_at,
		       last_login_at, last_login_ip
		FROM users
		WHERE email = LOWER($1)
	`, email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by email: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, full_name, email, phone, company, password_hash,
		       role, is_active, agreed_to_terms, created_at,
		       last_login_at, last_login_ip
		FROM users
		WHERE id = $1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by id: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	stored := *u
	stored.Email = strings.ToLower(stored.Email)

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (full_name, email, phone, company, password_hash,
		                   role, is_active, agreed_to_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, stored.FullName, stored.Email, stored.Phone, stored.Company,
		stored.PasswordHash, stored.Role, stored.IsActive, stored.AgreedToTerms).
		Scan(&stored.ID, &stored.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("store: insert user: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time, ip string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET last_login_at = $1, last_login_ip = $2
		WHERE id = $3
	`, at, ip, id)
	if err != nil {
		return fmt.Errorf("store: update last login: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update last login: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
