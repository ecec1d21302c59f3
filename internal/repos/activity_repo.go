package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ActivityRepo struct{ db *sqlx.DB }

func NewActivityRepo(db *sqlx.DB) *ActivityRepo { return &ActivityRepo{db: db} }

// Record appends one activity row. The table is append-only; nothing
// in the codebase updates or deletes from it.
func (r *ActivityRepo) Record(userID *int64, actionType, description, ip string) error {
	_, err := r.db.Exec(`
  INSERT INTO activity_log(user_id, action_type, description, ip_address)
  VALUES (?,?,?,?)`, userID, actionType, description, ip)
	return err
}

// ListLatest is used by operators to inspect recent workflow actions.
func (r *ActivityRepo) ListLatest(limit int) ([]domain.ActivityEntry, error) {
	out := []domain.ActivityEntry{}
	err := r.db.Select(&out, `
  SELECT id, user_id, action_type, description, ip_address, created_at
  FROM activity_log
  ORDER BY created_at DESC, id DESC
  LIMIT ?`, limit)
	return out, err
}
