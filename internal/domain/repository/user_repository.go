package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/platform/database"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type pgUserRepository struct {
	handle *database.Handle
}

func NewPgUserRepository(handle *database.Handle) UserRepository {
	return &pgUserRepository{handle: handle}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, email, hashed_password, name, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = db.ExecContext(ctx, query,
		user.ID, user.Email, user.HashedPassword, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on email
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, hashed_password, name, role, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err = db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	// Malformed id syntax is a miss, not a query error.
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, hashed_password, name, role, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err = db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}
