package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/referly/referral-be/internal/models"
	"github.com/referly/referral-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore     = (*Store)(nil)
	_ storage.ReferralStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and referrals.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_name_unique_idx ON users (name);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE TABLE IF NOT EXISTS referrals (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			reference_bonus NUMERIC(12,2) NOT NULL,
			referee_bonus NUMERIC(12,2) NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS referrals_name_idx ON referrals (name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. Uniqueness of name and email is enforced
// by the database, so concurrent registrations cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "name") {
				return models.User{}, storage.ErrDuplicateName
			}
			return models.User{}, storage.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1;
	`
	var user models.User
	row := s.pool.QueryRow(ctx, query, email)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateReferral inserts a new referral row with a generated id.
func (s *Store) CreateReferral(ctx context.Context, referral models.Referral) (models.Referral, error) {
	referral.ID = uuid.New()
	const query = `
		INSERT INTO referrals (id, name, reference_bonus, referee_bonus, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	row := s.pool.QueryRow(ctx, query, referral.ID, referral.Name, referral.ReferenceBonus, referral.RefereeBonus, referral.Email)
	if err := row.Scan(&referral.CreatedAt); err != nil {
		return models.Referral{}, err
	}
	return referral, nil
}

// ListReferrals returns every referral row.
func (s *Store) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	const query = `
		SELECT id, name, reference_bonus, referee_bonus, email, created_at
		FROM referrals
		ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReferrals(rows)
}

// ListReferralsByProgram returns referral rows matching a program name.
func (s *Store) ListReferralsByProgram(ctx context.Context, name string) ([]models.Referral, error) {
	const query = `
		SELECT id, name, reference_bonus, referee_bonus, email, created_at
		FROM referrals
		WHERE name = $1
		ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReferrals(rows)
}

func scanReferrals(rows pgx.Rows) ([]models.Referral, error) {
	referrals := make([]models.Referral, 0)
	for rows.Next() {
		var r models.Referral
		if err := rows.Scan(&r.ID, &r.Name, &r.ReferenceBonus, &r.RefereeBonus, &r.Email, &r.CreatedAt); err != nil {
			return nil, err
		}
		referrals = append(referrals, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return referrals, nil
}
