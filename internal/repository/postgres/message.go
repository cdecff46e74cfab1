package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, sender_id, sender_name, sender_avatar, recipient_id, listing_id, content, is_read, created_on`

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	now := time.Now().UTC()
	m.CreatedOn = now.Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `INSERT INTO messages (`+messageColumns+`)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)`,
		m.ID, m.SenderID, m.SenderName, m.SenderAvatar, m.RecipientID, m.ListingID, m.Content, now)
	return err
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
	        WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
	        ORDER BY created_on`
	return r.queryMessages(ctx, query, userID, otherID)
}

func (r *messageRepository) ListInvolving(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	query := `SELECT ` + messageColumns + ` FROM messages
	        WHERE sender_id = $1 OR recipient_id = $1
	        ORDER BY created_on DESC LIMIT $2`
	return r.queryMessages(ctx, query, userID, limit)
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var createdOn time.Time
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.SenderAvatar,
			&m.RecipientID, &m.ListingID, &m.Content, &m.IsRead, &createdOn); err != nil {
			return nil, err
		}
		m.CreatedOn = createdOn.Format(time.RFC3339)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepository) MarkReadFrom(ctx context.Context, senderID, recipientID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = true WHERE sender_id = $1 AND recipient_id = $2 AND is_read = false`,
		senderID, recipientID)
	return err
}
