package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/dberrors"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user row inside q (usually a transaction) and
// returns its ID
func (r *UserRepository) Create(ctx context.Context, q Querier, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password", "is_active").
		Values(user.Username, user.Email, user.Password, true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "email", "password", "is_active", "created_at", "updated_at").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find user query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// UsernameExists reports whether a username is taken, optionally excluding
// one user ID (for profile edits)
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// EmailExists reports whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateUsername changes a user's username
func (r *UserRepository) UpdateUsername(ctx context.Context, q Querier, id int64, username string) error {
	sql, args, err := r.sb.Update("users").
		Set("username", username).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update username query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error updating username: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
