package notification

import (
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *Notification) error {
	query := `
		INSERT INTO notifications (member_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(query, n.MemberID, n.Title, n.Body).Scan(&n.ID, &n.CreatedAt)
}

func (r *NotificationRepository) GetAll(filter NotificationFilter) ([]Notification, error) {
	query := `
		SELECT id, member_id, title, body, is_read, created_at
		FROM notifications
		WHERE member_id = $1
	`
	args := []interface{}{filter.MemberID}

	if filter.UnreadOnly {
		query += ` AND is_read = false`
	}

	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	var notifications []Notification
	if err := r.db.Select(&notifications, query, args...); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(memberID int) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM notifications WHERE member_id = $1 AND is_read = false`, memberID)
	return count, err
}

func (r *NotificationRepository) MarkRead(id int) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	return err
}

func (r *NotificationRepository) MarkAllRead(memberID int) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE member_id = $1`, memberID)
	return err
}

func (r *NotificationRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM notifications WHERE id = $1`, id)
	return err
}
