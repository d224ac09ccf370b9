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
)

// ChatRepository handles chats, their members, messages and read receipts
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create opens a chat between the given profiles inside q
func (r *ChatRepository) Create(ctx context.Context, q Querier, memberProfileIDs []int64) (int64, error) {
	var id int64
	if err := q.QueryRow(ctx, `INSERT INTO chats DEFAULT VALUES RETURNING id`).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating chat: %w", err)
	}

	for _, profileID := range memberProfileIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO chat_members (chat_id, profile_id) VALUES ($1, $2)`,
			id, profileID)
		if err != nil {
			return 0, fmt.Errorf("error adding chat member: %w", err)
		}
	}

	return id, nil
}

// FindByExactMembers retrieves a chat whose member set is exactly the
// given profiles, or nil when none exists
func (r *ChatRepository) FindByExactMembers(ctx context.Context, memberProfileIDs []int64) (*models.Chat, error) {
	query := `
		SELECT c.id, c.created_at
		FROM chats c
		WHERE (SELECT COUNT(*) FROM chat_members cm WHERE cm.chat_id = c.id) = $2
			AND NOT EXISTS(
				SELECT 1 FROM chat_members cm
				WHERE cm.chat_id = c.id AND cm.profile_id <> ALL($1)
			)
		LIMIT 1
	`

	var chat models.Chat
	err := r.db.QueryRow(ctx, query, memberProfileIDs, len(memberProfileIDs)).
		Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding chat by members: %w", err)
	}

	return &chat, nil
}

// GetByID retrieves a chat, or ErrChatNotFound
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.QueryRow(ctx, `SELECT id, created_at FROM chats WHERE id = $1`, id).
		Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error retrieving chat: %w", err)
	}

	return &chat, nil
}

// IsMember reports whether the profile belongs to the chat
func (r *ChatRepository) IsMember(ctx context.Context, chatID, profileID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chat_members WHERE chat_id = $1 AND profile_id = $2)`,
		chatID, profileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking chat membership: %w", err)
	}

	return exists, nil
}

// GetMembers retrieves the chat's member profiles
func (r *ChatRepository) GetMembers(ctx context.Context, chatID int64) ([]models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM chat_members cm
		JOIN profiles p ON p.id = cm.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE cm.chat_id = $1
		ORDER BY cm.id
	`, profileColumns)

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chat members: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat member row: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// ListForProfile retrieves the chats the profile belongs to that already
// have at least one message, most recently active first
func (r *ChatRepository) ListForProfile(ctx context.Context, profileID int64) ([]models.Chat, error) {
	query := `
		SELECT c.id, c.created_at
		FROM chats c
		JOIN chat_members cm ON cm.chat_id = c.id
		WHERE cm.profile_id = $1
			AND EXISTS(SELECT 1 FROM messages m WHERE m.chat_id = c.id)
		ORDER BY (SELECT MAX(m.id) FROM messages m WHERE m.chat_id = c.id) DESC
	`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chats: %w", err)
	}
	defer rows.Close()

	chats := []models.Chat{}
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}

	return chats, rows.Err()
}

// CreateMessage stores a message and returns its ID
func (r *ChatRepository) CreateMessage(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (chat_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query, message.ChatID, message.SenderID, message.Content).
		Scan(&id, &message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return id, nil
}

// GetLastMessage retrieves the chat's newest message, or nil when the
// chat is empty
func (r *ChatRepository) GetLastMessage(ctx context.Context, chatID int64) (*models.Message, error) {
	messages, err := r.GetMessages(ctx, chatID, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}

	return &messages[0], nil
}

// GetMessages retrieves a page of the chat's messages, newest first, with
// senders and read receipts loaded
func (r *ChatRepository) GetMessages(ctx context.Context, chatID int64, offset, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at,
			COALESCE(ARRAY(SELECT mv.profile_id FROM message_visualizations mv WHERE mv.message_id = m.id ORDER BY mv.profile_id), '{}'),
			%s
		FROM messages m
		LEFT JOIN profiles p ON p.id = m.sender_id
		LEFT JOIN users u ON u.id = p.user_id
		WHERE m.chat_id = $1
		ORDER BY m.id DESC
		OFFSET $2 LIMIT $3
	`, profileColumns)

	rows, err := r.db.Query(ctx, query, chatID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var message models.Message
		var senderID *int64
		var userID *int64
		var profileType, firstName, lastName, bio, linkedin, photoURL, username *string
		var birthDate, profileCreatedAt, profileUpdatedAt *time.Time
		err := rows.Scan(
			&message.ID, &message.ChatID, &message.SenderID, &message.Content,
			&message.CreatedAt, &message.VisualizedBy,
			&senderID, &userID, &profileType, &firstName, &lastName, &bio,
			&linkedin, &photoURL, &birthDate, &profileCreatedAt, &profileUpdatedAt, &username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		if senderID != nil {
			message.Sender = &models.Profile{
				ID:        *senderID,
				UserID:    *userID,
				Type:      models.ProfileType(*profileType),
				FirstName: *firstName,
				LastName:  *lastName,
				Bio:       *bio,
				LinkedIn:  *linkedin,
				PhotoURL:  *photoURL,
				BirthDate: birthDate,
				CreatedAt: *profileCreatedAt,
				UpdatedAt: *profileUpdatedAt,
				Username:  *username,
			}
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountMessages returns how many messages the chat holds
func (r *ChatRepository) CountMessages(ctx context.Context, chatID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE chat_id = $1`, chatID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting messages: %w", err)
	}

	return count, nil
}

// CountUnvisualized returns how many messages from other members the
// profile has not seen yet
func (r *ChatRepository) CountUnvisualized(ctx context.Context, chatID, profileID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		WHERE m.chat_id = $1
			AND (m.sender_id IS NULL OR m.sender_id <> $2)
			AND NOT EXISTS(
				SELECT 1 FROM message_visualizations mv
				WHERE mv.message_id = m.id AND mv.profile_id = $2
			)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, chatID, profileID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unvisualized messages: %w", err)
	}

	return count, nil
}

// VisualizeMessages records the profile as having seen every message in
// the chat it has not seen yet. Re-running it changes nothing.
func (r *ChatRepository) VisualizeMessages(ctx context.Context, chatID, profileID int64) error {
	query := `
		INSERT INTO message_visualizations (message_id, profile_id)
		SELECT m.id, $2
		FROM messages m
		WHERE m.chat_id = $1 AND (m.sender_id IS NULL OR m.sender_id <> $2)
		ON CONFLICT (message_id, profile_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, chatID, profileID); err != nil {
		return fmt.Errorf("error visualizing messages: %w", err)
	}

	return nil
}
