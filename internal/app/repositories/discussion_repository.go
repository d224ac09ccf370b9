package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/dberrors"
)

// DiscussionRepository handles project discussions, their stars and
// replies, and the notification queries built on them
type DiscussionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDiscussionRepository creates a new DiscussionRepository
func NewDiscussionRepository(db *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const discussionColumns = `d.id, d.project_id, d.profile_id, d.title, d.body, d.category, d.created_at, d.updated_at`

func scanDiscussion(row pgx.Row) (*models.Discussion, error) {
	var d models.Discussion
	var profile models.Profile
	err := row.Scan(
		&d.ID, &d.ProjectID, &d.ProfileID, &d.Title, &d.Body,
		&d.Category, &d.CreatedAt, &d.UpdatedAt,
		&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
		&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
		&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
	)
	if err != nil {
		return nil, err
	}
	d.Profile = &profile
	return &d, nil
}

// Create inserts a new discussion and returns its ID
func (r *DiscussionRepository) Create(ctx context.Context, discussion *models.Discussion) (int64, error) {
	query := `
		INSERT INTO discussions (project_id, profile_id, title, body, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		discussion.ProjectID, discussion.ProfileID, discussion.Title,
		discussion.Body, discussion.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating discussion: %w", err)
	}

	return id, nil
}

// GetByID retrieves a discussion with its author, stars and replies
func (r *DiscussionRepository) GetByID(ctx context.Context, id int64) (*models.Discussion, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM discussions d
		JOIN profiles p ON p.id = d.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE d.id = $1
	`, discussionColumns, profileColumns)

	discussion, err := scanDiscussion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion: %w", err)
	}

	if discussion.Stars, err = r.GetStars(ctx, id); err != nil {
		return nil, err
	}
	if discussion.Replies, err = r.GetReplies(ctx, id); err != nil {
		return nil, err
	}

	return discussion, nil
}

// ListByProject retrieves a project's discussions with their children,
// newest first
func (r *DiscussionRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Discussion, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM discussions d
		JOIN profiles p ON p.id = d.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE d.project_id = $1
		ORDER BY d.id DESC
	`, discussionColumns, profileColumns)

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving discussions: %w", err)
	}
	defer rows.Close()

	discussions := []models.Discussion{}
	for rows.Next() {
		discussion, err := scanDiscussion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning discussion row: %w", err)
		}
		discussions = append(discussions, *discussion)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range discussions {
		if discussions[i].Stars, err = r.GetStars(ctx, discussions[i].ID); err != nil {
			return nil, err
		}
		if discussions[i].Replies, err = r.GetReplies(ctx, discussions[i].ID); err != nil {
			return nil, err
		}
	}

	return discussions, nil
}

// Delete removes a discussion and, via ON DELETE CASCADE, its stars and
// replies
func (r *DiscussionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDiscussionNotFound
	}

	return nil
}

// CreateStar records a star. The unique constraint on
// (discussion_id, profile_id) turns a repeat into ErrAlreadyStarred.
func (r *DiscussionRepository) CreateStar(ctx context.Context, discussionID, profileID int64) (int64, error) {
	query := `
		INSERT INTO discussion_stars (discussion_id, profile_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, discussionID, profileID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "discussion_stars_discussion_id_profile_id_key") {
			return 0, apperrors.ErrAlreadyStarred
		}
		return 0, fmt.Errorf("error creating discussion star: %w", err)
	}

	return id, nil
}

// DeleteStar removes the requester's star, or ErrStarNotFound
func (r *DiscussionRepository) DeleteStar(ctx context.Context, discussionID, profileID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM discussion_stars WHERE discussion_id = $1 AND profile_id = $2`,
		discussionID, profileID)
	if err != nil {
		return fmt.Errorf("error deleting discussion star: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStarNotFound
	}

	return nil
}

// GetStars retrieves a discussion's stars with their authors
func (r *DiscussionRepository) GetStars(ctx context.Context, discussionID int64) ([]models.DiscussionStar, error) {
	query := fmt.Sprintf(`
		SELECT ds.id, ds.discussion_id, ds.profile_id, ds.visualized, ds.created_at, ds.updated_at, %s
		FROM discussion_stars ds
		JOIN profiles p ON p.id = ds.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE ds.discussion_id = $1
		ORDER BY ds.id
	`, profileColumns)

	return r.queryStars(ctx, query, discussionID)
}

// CreateReply adds a reply to a discussion
func (r *DiscussionRepository) CreateReply(ctx context.Context, reply *models.DiscussionReply) (int64, error) {
	query := `
		INSERT INTO discussion_replies (discussion_id, profile_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, reply.DiscussionID, reply.ProfileID, reply.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating discussion reply: %w", err)
	}

	return id, nil
}

// GetReplyByID retrieves a single reply, or ErrReplyNotFound
func (r *DiscussionRepository) GetReplyByID(ctx context.Context, id int64) (*models.DiscussionReply, error) {
	var reply models.DiscussionReply
	err := r.db.QueryRow(ctx,
		`SELECT id, discussion_id, profile_id, content, visualized, created_at, updated_at FROM discussion_replies WHERE id = $1`, id).
		Scan(&reply.ID, &reply.DiscussionID, &reply.ProfileID, &reply.Content,
			&reply.Visualized, &reply.CreatedAt, &reply.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReplyNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion reply: %w", err)
	}

	return &reply, nil
}

// DeleteReply removes a reply
func (r *DiscussionRepository) DeleteReply(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussion_replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion reply: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReplyNotFound
	}

	return nil
}

// GetReplies retrieves a discussion's replies with their authors
func (r *DiscussionRepository) GetReplies(ctx context.Context, discussionID int64) ([]models.DiscussionReply, error) {
	query := fmt.Sprintf(`
		SELECT dr.id, dr.discussion_id, dr.profile_id, dr.content, dr.visualized, dr.created_at, dr.updated_at, %s
		FROM discussion_replies dr
		JOIN profiles p ON p.id = dr.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE dr.discussion_id = $1
		ORDER BY dr.id
	`, profileColumns)

	return r.queryReplies(ctx, query, discussionID)
}

// StarsForAuthor retrieves all stars on the profile's own discussions,
// excluding stars the author placed themselves, newest first. Callers
// apply the grace-window filter.
func (r *DiscussionRepository) StarsForAuthor(ctx context.Context, profileID int64) ([]models.DiscussionStar, error) {
	query := fmt.Sprintf(`
		SELECT ds.id, ds.discussion_id, ds.profile_id, ds.visualized, ds.created_at, ds.updated_at, %s
		FROM discussion_stars ds
		JOIN discussions d ON d.id = ds.discussion_id
		JOIN profiles p ON p.id = ds.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE d.profile_id = $1 AND ds.profile_id <> $1
		ORDER BY ds.id DESC
	`, profileColumns)

	return r.queryStars(ctx, query, profileID)
}

// RepliesForAuthor retrieves all replies on the profile's own
// discussions, excluding the author's own replies, newest first
func (r *DiscussionRepository) RepliesForAuthor(ctx context.Context, profileID int64) ([]models.DiscussionReply, error) {
	query := fmt.Sprintf(`
		SELECT dr.id, dr.discussion_id, dr.profile_id, dr.content, dr.visualized, dr.created_at, dr.updated_at, %s
		FROM discussion_replies dr
		JOIN discussions d ON d.id = dr.discussion_id
		JOIN profiles p ON p.id = dr.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE d.profile_id = $1 AND dr.profile_id <> $1
		ORDER BY dr.id DESC
	`, profileColumns)

	return r.queryReplies(ctx, query, profileID)
}

// CountUnvisualized returns how many unvisualized stars and replies sit
// on the profile's own discussions, excluding self-authored ones. The
// grace window does not apply here.
func (r *DiscussionRepository) CountUnvisualized(ctx context.Context, profileID int64) (stars int64, replies int64, err error) {
	starQuery := `
		SELECT COUNT(*)
		FROM discussion_stars ds
		JOIN discussions d ON d.id = ds.discussion_id
		WHERE d.profile_id = $1 AND ds.profile_id <> $1 AND ds.visualized = FALSE
	`
	if err = r.db.QueryRow(ctx, starQuery, profileID).Scan(&stars); err != nil {
		return 0, 0, fmt.Errorf("error counting unvisualized stars: %w", err)
	}

	replyQuery := `
		SELECT COUNT(*)
		FROM discussion_replies dr
		JOIN discussions d ON d.id = dr.discussion_id
		WHERE d.profile_id = $1 AND dr.profile_id <> $1 AND dr.visualized = FALSE
	`
	if err = r.db.QueryRow(ctx, replyQuery, profileID).Scan(&replies); err != nil {
		return 0, 0, fmt.Errorf("error counting unvisualized replies: %w", err)
	}

	return stars, replies, nil
}

// VisualizeAll marks every unvisualized star and reply on the profile's
// own discussions as seen. Bumping updated_at starts the grace window.
func (r *DiscussionRepository) VisualizeAll(ctx context.Context, profileID int64) error {
	starQuery := `
		UPDATE discussion_stars ds
		SET visualized = TRUE, updated_at = NOW()
		FROM discussions d
		WHERE d.id = ds.discussion_id AND d.profile_id = $1 AND ds.visualized = FALSE
	`
	if _, err := r.db.Exec(ctx, starQuery, profileID); err != nil {
		return fmt.Errorf("error visualizing stars: %w", err)
	}

	replyQuery := `
		UPDATE discussion_replies dr
		SET visualized = TRUE, updated_at = NOW()
		FROM discussions d
		WHERE d.id = dr.discussion_id AND d.profile_id = $1 AND dr.visualized = FALSE
	`
	if _, err := r.db.Exec(ctx, replyQuery, profileID); err != nil {
		return fmt.Errorf("error visualizing replies: %w", err)
	}

	return nil
}

func (r *DiscussionRepository) queryStars(ctx context.Context, query string, args ...any) ([]models.DiscussionStar, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving discussion stars: %w", err)
	}
	defer rows.Close()

	stars := []models.DiscussionStar{}
	for rows.Next() {
		var star models.DiscussionStar
		var profile models.Profile
		err := rows.Scan(
			&star.ID, &star.DiscussionID, &star.ProfileID, &star.Visualized,
			&star.CreatedAt, &star.UpdatedAt,
			&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
			&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
			&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning discussion star row: %w", err)
		}
		star.Profile = &profile
		stars = append(stars, star)
	}

	return stars, rows.Err()
}

func (r *DiscussionRepository) queryReplies(ctx context.Context, query string, args ...any) ([]models.DiscussionReply, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving discussion replies: %w", err)
	}
	defer rows.Close()

	replies := []models.DiscussionReply{}
	for rows.Next() {
		var reply models.DiscussionReply
		var profile models.Profile
		err := rows.Scan(
			&reply.ID, &reply.DiscussionID, &reply.ProfileID, &reply.Content,
			&reply.Visualized, &reply.CreatedAt, &reply.UpdatedAt,
			&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
			&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
			&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning discussion reply row: %w", err)
		}
		reply.Profile = &profile
		replies = append(replies, reply)
	}

	return replies, rows.Err()
}
