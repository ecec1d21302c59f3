package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
  SELECT id,email,password_hash,role,active FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
  SELECT id,email,password_hash,role,active FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
