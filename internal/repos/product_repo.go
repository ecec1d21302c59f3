package repos

import (
	"petsupplies/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter holds the already-validated listing predicates. Zero
// or nil fields are skipped; Active=1 is always applied.
type ProductFilter struct {
	CategoryID *int64
	Status     string
	SearchTerm string
	MinPrice   *float64
	MaxPrice   *float64
	Brand      string
}

const productCols = `
  id, seller_id, category_id, name, description, brand, price, stock_quantity,
  image_url, status, active, view_count,
  created_at, COALESCE(updated_at,'') AS updated_at`

func buildWhere(f ProductFilter) (string, []any) {
	where := `active = 1`
	args := []any{}
	if f.CategoryID != nil {
		where += ` AND category_id = ?`
		args = append(args, *f.CategoryID)
	}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.SearchTerm != "" {
		where += ` AND (name LIKE ? OR description LIKE ? OR brand LIKE ?)`
		like := "%" + f.SearchTerm + "%"
		args = append(args, like, like, like)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.Brand != "" {
		where += ` AND brand = ?`
		args = append(args, f.Brand)
	}
	return where, args
}

// Count returns the number of rows matching f before any page window.
func (r *ProductRepo) Count(f ProductFilter) (int, error) {
	where, args := buildWhere(f)
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE `+where, args...)
	return n, err
}

// List returns one page of matching rows, newest first. Ties on
// created_at are broken by id ascending so repeated calls page
// identically.
func (r *ProductRepo) List(f ProductFilter, limit, offset int) ([]domain.Product, error) {
	where, args := buildWhere(f)
	sql := `SELECT` + productCols + `
  FROM products
  WHERE ` + where + `
  ORDER BY created_at DESC, id ASC
  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	res, err := r.db.Exec(`
  INSERT INTO products(seller_id, category_id, name, description, brand, price,
                       stock_quantity, image_url, status, active)
  VALUES (?,?,?,?,?,?,?,?,?,1)`,
		p.SellerID, p.CategoryID, p.Name, p.Description, p.Brand, p.Price,
		p.StockQuantity, p.ImageURL, p.Status)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// Update persists all mutable fields and refreshes updated_at
// unconditionally.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
  UPDATE products
  SET name=?, description=?, brand=?, price=?, stock_quantity=?, image_url=?,
      updated_at=CURRENT_TIMESTAMP
  WHERE id=?`,
		p.Name, p.Description, p.Brand, p.Price, p.StockQuantity, p.ImageURL, p.ID)
	return err
}

func (r *ProductRepo) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
  UPDATE products SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	return err
}

// SetInactive soft-deletes; status and history are untouched, and
// repeating the call is a no-op.
func (r *ProductRepo) SetInactive(id int64) error {
	_, err := r.db.Exec(`UPDATE products SET active=0 WHERE id=?`, id)
	return err
}

// IncrementViews bumps the counter atomically at the store so two
// simultaneous reads cannot lose an increment.
func (r *ProductRepo) IncrementViews(id int64) error {
	_, err := r.db.Exec(`UPDATE products SET view_count = view_count + 1 WHERE id=?`, id)
	return err
}
