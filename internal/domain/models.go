package domain

// Product lifecycle statuses.
const (
	StatusPending    = "Pending"
	StatusApproved   = "Approved"
	StatusRejected   = "Rejected"
	StatusSold       = "Sold"
	StatusOutOfStock = "OutOfStock"
)

type Product struct {
	ID            int64   `db:"id" json:"id"`
	SellerID      int64   `db:"seller_id" json:"seller_id"`
	CategoryID    int64   `db:"category_id" json:"category_id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	Brand         string  `db:"brand" json:"brand"`
	Price         float64 `db:"price" json:"price"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	ImageURL      string  `db:"image_url" json:"image_url"`
	Status        string  `db:"status" json:"status"`
	Active        bool    `db:"active" json:"active"`
	ViewCount     int     `db:"view_count" json:"view_count"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
	UpdatedAt     string  `db:"updated_at" json:"updated_at"`
}

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Active      bool   `db:"active" json:"active"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

type Seller struct {
	ID           int64   `db:"id" json:"id"`
	UserID       int64   `db:"user_id" json:"user_id"`
	BusinessName string  `db:"business_name" json:"business_name"`
	Verified     bool    `db:"verified" json:"verified"`
	Rating       float64 `db:"rating" json:"rating"`
}

// Notification rows are written by workflow actions only, never by
// client requests.
type Notification struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	Type      string `db:"type" json:"type"`
	Title     string `db:"title" json:"title"`
	Message   string `db:"message" json:"message"`
	Read      bool   `db:"read" json:"read"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// ActivityEntry is append-only; rows are never updated or deleted.
type ActivityEntry struct {
	ID          int64  `db:"id" json:"id"`
	UserID      *int64 `db:"user_id" json:"user_id"`
	ActionType  string `db:"action_type" json:"action_type"`
	Description string `db:"description" json:"description"`
	IPAddress   string `db:"ip_address" json:"ip_address"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}
