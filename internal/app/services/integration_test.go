//go:build integration

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilink/unilink/internal/app/migrations"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
	"github.com/unilink/unilink/internal/pkg/apperrors"
)

// These tests exercise the invariants that live in the schema rather than
// in Go code, so they need a real database. Run them with
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/app/services/
//
// against a disposable database; fixtures are created per test and never
// cleaned up.

func setupIntegrationDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	migrator := migrations.NewMigrator(pool)
	require.NoError(t, migrator.MigrateFromDirectory(filepath.Join("..", "..", "..", "migrations")))

	return pool
}

// uniqueTag builds a username-safe unique string. The username column is
// VARCHAR(25), so the prefix has to stay short.
func uniqueTag(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%1e12)
}

func createTestProfile(t *testing.T, ctx context.Context, pool *pgxpool.Pool, repos *repositories.Repositories, prefix string) int64 {
	t.Helper()

	tag := uniqueTag(prefix)
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	userID, err := repos.UserRepository.Create(ctx, tx, &models.User{
		Username: tag,
		Email:    tag + "@usp.br",
		Password: "senha-com-hash",
	})
	require.NoError(t, err)

	profileID, err := repos.ProfileRepository.Create(ctx, tx, &models.Profile{
		UserID:    userID,
		Type:      models.ProfileTypeStudent,
		FirstName: "Teste",
		LastName:  "Integracao",
		Bio:       models.DefaultBio,
		PhotoURL:  models.DefaultPhotoURL,
	})
	require.NoError(t, err)

	require.NoError(t, tx.Commit(ctx))
	return profileID
}

func createTestProject(t *testing.T, ctx context.Context, pool *pgxpool.Pool, repos *repositories.Repositories, adminProfileID int64) int64 {
	t.Helper()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	projectID, err := repos.ProjectRepository.Create(ctx, tx, &models.Project{
		Category:    "startup",
		Name:        uniqueTag("prj"),
		Slogan:      "slogan de teste",
		Description: models.DefaultProjectDescription,
		ImageURL:    models.DefaultProjectImage,
	})
	require.NoError(t, err)

	_, err = repos.ProjectRepository.CreateMember(ctx, tx, &models.ProjectMember{
		ProjectID: projectID,
		ProfileID: adminProfileID,
		Role:      models.RoleAdmin,
	})
	require.NoError(t, err)

	require.NoError(t, tx.Commit(ctx))
	return projectID
}

// The unique constraint on project_stars is the only thing preventing a
// double star; the service has no pre-check.
func TestStarProjectUniquePerProfile(t *testing.T) {
	ctx := context.Background()
	pool := setupIntegrationDB(t)
	repos := repositories.NewRepositories(pool)
	svc := NewProjectService(pool, repos.ProjectRepository, repos.RequestRepository, repos.ProfileRepository, repos.ReferenceRepository, zerolog.Nop())

	owner := createTestProfile(t, ctx, pool, repos, "own")
	fan := createTestProfile(t, ctx, pool, repos, "fan")
	projectID := createTestProject(t, ctx, pool, repos, owner)

	require.NoError(t, svc.StarProject(ctx, fan, projectID))

	err := svc.StarProject(ctx, fan, projectID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.Equal(t, "Você não pode curtir o mesmo projeto mais de uma vez!", apperrors.ClientMessage(err, ""))

	// Unstar releases the constraint for a fresh star
	require.NoError(t, svc.UnstarProject(ctx, fan, projectID))
	require.NoError(t, svc.StarProject(ctx, fan, projectID))
}

// Replying consumes the request row whichever way the answer goes; only an
// accept creates the membership.
func TestReplyInvitationConsumesRequest(t *testing.T) {
	ctx := context.Background()
	pool := setupIntegrationDB(t)
	repos := repositories.NewRepositories(pool)
	svc := NewProjectService(pool, repos.ProjectRepository, repos.RequestRepository, repos.ProfileRepository, repos.ReferenceRepository, zerolog.Nop())

	owner := createTestProfile(t, ctx, pool, repos, "own")
	projectID := createTestProject(t, ctx, pool, repos, owner)

	t.Run("accept creates the membership and deletes the request", func(t *testing.T) {
		invitee := createTestProfile(t, ctx, pool, repos, "inv")
		requestID, err := repos.RequestRepository.Create(ctx, pool, &models.ProjectRequest{
			ProjectID: projectID,
			ProfileID: invitee,
			Type:      models.RequestTypeInvitation,
			Message:   "Junte-se a nós!",
		})
		require.NoError(t, err)

		require.NoError(t, svc.ReplyInvitation(ctx, invitee, &dto.ReplyRequest{RequestID: requestID, Reply: "accept"}))

		member, err := repos.ProjectRepository.GetMember(ctx, projectID, invitee)
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, member.Role)

		_, err = repos.RequestRepository.GetByID(ctx, requestID)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})

	t.Run("decline deletes the request without a membership", func(t *testing.T) {
		invitee := createTestProfile(t, ctx, pool, repos, "inv")
		requestID, err := repos.RequestRepository.Create(ctx, pool, &models.ProjectRequest{
			ProjectID: projectID,
			ProfileID: invitee,
			Type:      models.RequestTypeInvitation,
			Message:   "Junte-se a nós!",
		})
		require.NoError(t, err)

		require.NoError(t, svc.ReplyInvitation(ctx, invitee, &dto.ReplyRequest{RequestID: requestID, Reply: "deny"}))

		_, err = repos.ProjectRepository.GetMember(ctx, projectID, invitee)
		assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

		_, err = repos.RequestRepository.GetByID(ctx, requestID)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})
}

// Stars and replies a profile leaves on its own discussion never show up
// in its notification feed; the exclusion lives in the repository SQL.
func TestDiscussionNotificationsExcludeAuthor(t *testing.T) {
	ctx := context.Background()
	pool := setupIntegrationDB(t)
	repos := repositories.NewRepositories(pool)
	notifSvc := NewNotificationService(repos.RequestRepository, repos.DiscussionRepository, zerolog.Nop())

	author := createTestProfile(t, ctx, pool, repos, "aut")
	other := createTestProfile(t, ctx, pool, repos, "oth")
	projectID := createTestProject(t, ctx, pool, repos, author)

	discussionID, err := repos.DiscussionRepository.Create(ctx, &models.Discussion{
		ProjectID: projectID,
		ProfileID: author,
		Title:     "Dúvida sobre o deploy",
		Body:      "Alguém já configurou o ambiente?",
		Category:  "doubt",
	})
	require.NoError(t, err)

	_, err = repos.DiscussionRepository.CreateStar(ctx, discussionID, author)
	require.NoError(t, err)
	_, err = repos.DiscussionRepository.CreateStar(ctx, discussionID, other)
	require.NoError(t, err)

	_, err = repos.DiscussionRepository.CreateReply(ctx, &models.DiscussionReply{
		DiscussionID: discussionID,
		ProfileID:    author,
		Content:      "respondendo a mim mesmo",
	})
	require.NoError(t, err)
	_, err = repos.DiscussionRepository.CreateReply(ctx, &models.DiscussionReply{
		DiscussionID: discussionID,
		ProfileID:    other,
		Content:      "já sim, posso ajudar",
	})
	require.NoError(t, err)

	resp, err := notifSvc.GetNotifications(ctx, author)
	require.NoError(t, err)
	require.Len(t, resp.DiscussionStars, 1)
	assert.Equal(t, other, resp.DiscussionStars[0].Profile.ID)
	require.Len(t, resp.DiscussionReplies, 1)
	assert.Equal(t, other, resp.DiscussionReplies[0].Profile.ID)

	count, err := notifSvc.GetNotificationsNumber(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
