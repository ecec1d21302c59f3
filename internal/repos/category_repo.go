package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) ListActive() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT id, name, description, active, created_at
  FROM categories
  WHERE active = 1
  ORDER BY name`)
	return out, err
}
