package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Notify appends one notification row for the target user.
func (r *NotificationRepo) Notify(userID int64, ntype, title, message string) error {
	_, err := r.db.Exec(`
  INSERT INTO notifications(user_id, type, title, message) VALUES (?,?,?,?)`,
		userID, ntype, title, message)
	return err
}

func (r *NotificationRepo) ListByUser(userID int64) ([]domain.Notification, error) {
	out := []domain.Notification{}
	err := r.db.Select(&out, `
  SELECT id, user_id, type, title, message, read, created_at
  FROM notifications
  WHERE user_id = ?
  ORDER BY created_at DESC, id DESC`, userID)
	return out, err
}

// MarkRead flips the read flag for a notification owned by userID and
// reports whether a row matched.
func (r *NotificationRepo) MarkRead(id, userID int64) (bool, error) {
	res, err := r.db.Exec(`
  UPDATE notifications SET read=1 WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
