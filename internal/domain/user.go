package domain

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
	RoleSeller   = "Seller"
)

type User struct {
	ID     int64  `db:"id"`
	Email  string `db:"email"`
	Hash   string `db:"password_hash"`
	Role   string `db:"role"`
	Active bool   `db:"active"`
}

// Principal is the authenticated identity a request acts as. It is
// resolved once from the bearer token and passed explicitly into
// service calls; SellerID is zero unless the user has a seller record.
type Principal struct {
	UserID   int64
	Role     string
	SellerID int64
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsSeller() bool { return p.Role == RoleSeller }
