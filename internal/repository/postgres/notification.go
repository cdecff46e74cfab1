package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	n.CreatedOn = now.Format(time.RFC3339)
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, title, message, attributes, is_read, created_on)
	     VALUES ($1, $2, $3, $4, $5, false, $6)`,
		n.ID, n.UserID, n.Title, n.Message, attrs, now)
	return err
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, message, attributes, is_read, created_on
	     FROM notifications WHERE user_id = $1
	     ORDER BY created_on DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &attrs, &n.IsRead, &createdOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		n.CreatedOn = createdOn.Format(time.RFC3339)
		notes = append(notes, n)
	}
	return notes, total, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("notification not found")
	}
	return nil
}
