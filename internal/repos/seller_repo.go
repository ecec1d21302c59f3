package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SellerRepo struct{ db *sqlx.DB }

func NewSellerRepo(db *sqlx.DB) *SellerRepo { return &SellerRepo{db: db} }

func (r *SellerRepo) ByID(id int64) (*domain.Seller, error) {
	var s domain.Seller
	err := r.db.Get(&s, `
  SELECT id, user_id, business_name, verified, rating FROM sellers WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SellerRepo) ByUserID(userID int64) (*domain.Seller, error) {
	var s domain.Seller
	err := r.db.Get(&s, `
  SELECT id, user_id, business_name, verified, rating FROM sellers WHERE user_id=?`, userID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
