package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so multi-row mutations can run
// inside one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repository instances
type Repositories struct {
	UserRepository       *UserRepository
	ProfileRepository    *ProfileRepository
	ReferenceRepository  *ReferenceRepository
	ProjectRepository    *ProjectRepository
	RequestRepository    *RequestRepository
	DiscussionRepository *DiscussionRepository
	ChatRepository       *ChatRepository
	TokenRepository      *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		ProfileRepository:    NewProfileRepository(db),
		ReferenceRepository:  NewReferenceRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		RequestRepository:    NewRequestRepository(db),
		DiscussionRepository: NewDiscussionRepository(db),
		ChatRepository:       NewChatRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
