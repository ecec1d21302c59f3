package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (users/sellers/categories/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('Admin','Customer','Seller')),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Sellers
CREATE TABLE IF NOT EXISTS sellers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  business_name TEXT NOT NULL,
  verified INTEGER NOT NULL DEFAULT 0,
  rating NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sellers_user ON sellers(user_id);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL
);

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  seller_id INTEGER NOT NULL REFERENCES sellers(id) ON DELETE RESTRICT,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price > 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Pending'
    CHECK (status IN ('Pending','Approved','Rejected','Sold','OutOfStock')),
  active INTEGER NOT NULL DEFAULT 1,
  view_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_seller     ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Notifications
CREATE TABLE IF NOT EXISTS notifications(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  type TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);

-- Activity log (append-only)
CREATE TABLE IF NOT EXISTS activity_log(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  action_type TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  ip_address TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity_log(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/sellers/categories/products")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(id,email,password_hash,role) VALUES
	  (1,'admin@petsupplies.test',?, 'Admin'),
	  (2,'paws@petsupplies.test', ?, 'Seller'),
	  (3,'tails@petsupplies.test',?, 'Seller'),
	  (4,'carol@petsupplies.test',?, 'Customer')`,
		hash("Passw0rd!"), hash("Passw0rd!"), hash("Passw0rd!"), hash("Passw0rd!"))

	tx.MustExec(`INSERT INTO sellers(id,user_id,business_name,verified,rating) VALUES
	  (1,2,'Paws & Co',1,4.6),
	  (2,3,'Happy Tails Supply',0,4.1)`)

	tx.MustExec(`INSERT INTO customers(id,user_id,first_name,last_name) VALUES
	  (1,4,'Carol','Becker')`)

	tx.MustExec(`INSERT INTO categories(id,name,description) VALUES
	  (1,'Dog Food','Dry and wet food for dogs'),
	  (2,'Cat Toys','Toys and enrichment for cats'),
	  (3,'Aquarium','Tanks, filters and decor')`)

	tx.MustExec(`INSERT INTO products(seller_id,category_id,name,description,brand,price,stock_quantity,status) VALUES
	  (1,1,'Grain-Free Salmon Kibble 5kg','Salmon-first dry food for adult dogs','NaturePaw',42.50,30,'Approved'),
	  (1,2,'Feather Wand','Interactive feather teaser wand','WhiskerWorks',7.99,120,'Approved'),
	  (2,3,'20L Starter Tank Kit','Tank, LED lid and filter for beginners','AquaHome',89.00,8,'Approved'),
	  (2,1,'Puppy Training Treats','Soft low-calorie training treats','NaturePaw',12.25,55,'Pending')`)

	return tx.Commit()
}
