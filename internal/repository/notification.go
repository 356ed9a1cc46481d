package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateNotificationIfAbsent inserts a notification unless an identical
// (user, interview, message) one already exists. Returns whether a row was
// created, which keeps repeated reminder runs from spamming recipients.
func (r *Repository) CreateNotificationIfAbsent(ctx context.Context, n *model.Notification) (bool, error) {
	const q = `
INSERT INTO notifications (notification_id, user_id, interview_id, message, status, created_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id, interview_id, message) DO NOTHING
`
	tag, err := r.db.Exec(ctx, q, uuid.New(), n.UserID, n.InterviewID, n.Message, model.NotificationUnread)
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	const q = `
SELECT notification_id, user_id, interview_id, message, status, created_at
FROM notifications WHERE notification_id = $1
`
	var n model.Notification
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&n.NotificationID, &n.UserID, &n.InterviewID, &n.Message, &n.Status, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: notification", model.ErrNotFound)
		}
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	return &n, nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	const q = `
SELECT notification_id, user_id, interview_id, message, status, created_at
FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.InterviewID, &n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		out = append(out, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	const q = `UPDATE notifications SET status = $1 WHERE notification_id = $2 AND user_id = $3`
	tag, err := r.db.Exec(ctx, q, model.NotificationRead, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification", model.ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM notifications WHERE notification_id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification", model.ErrNotFound)
	}
	return nil
}
