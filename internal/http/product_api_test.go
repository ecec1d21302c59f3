package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"petsupplies/internal/domain"
	"petsupplies/internal/http/handlers"
	"petsupplies/internal/media"
	"petsupplies/internal/repos"
	"petsupplies/internal/services"
)

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	images, err := media.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("media dir: %v", err)
	}
	authSvc := &services.AuthService{
		Users:   repos.NewUserRepo(db),
		Sellers: repos.NewSellerRepo(db),
		Secret:  []byte("test-secret"),
		TTL:     time.Hour,
	}

	app := fiber.New()
	deps := handlers.NewDeps(db, authSvc, images)
	api := app.Group("/api")
	api.Post("/auth/login", deps.AuthHandler.Login)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/categories", deps.ProductHandler.Categories)
	products.Get("/:id", deps.ProductHandler.Detail)

	withPrincipal := handlers.RequirePrincipal(authSvc)
	products.Post("/", withPrincipal, handlers.RequireRole(domain.RoleSeller), deps.ProductHandler.Create)
	products.Put("/:id", withPrincipal, handlers.RequireRole(domain.RoleSeller), deps.ProductHandler.Update)
	products.Delete("/:id", withPrincipal, handlers.RequireRole(domain.RoleSeller, domain.RoleAdmin), deps.ProductHandler.Delete)
	products.Post("/:id/approve", withPrincipal, handlers.RequireRole(domain.RoleAdmin), deps.ProductHandler.Approve)
	products.Post("/:id/reject", withPrincipal, handlers.RequireRole(domain.RoleAdmin), deps.ProductHandler.Reject)

	api.Get("/notifications", withPrincipal, deps.NotificationHandler.List)
	api.Post("/notifications/:id/read", withPrincipal, deps.NotificationHandler.MarkRead)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

// Seeded logins from repos.OpenDB.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": email, "password": "Passw0rd!",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("no token issued")
	}
	return body.Token
}

func multipartBody(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	_ = login(t, app, "admin@petsupplies.test")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "admin@petsupplies.test", "password": "wrong",
	})
	if resp.StatusCode != 401 {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}
}

func TestListingEnvelope(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/products?page=1&pageSize=2", "", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var page struct {
		TotalItems int              `json:"total_items"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
		TotalPages int              `json:"total_pages"`
		Products   []domain.Product `json:"products"`
	}
	decode(t, resp, &page)
	// 3 seeded Approved products; the Pending one is filtered by default
	if page.TotalItems != 3 || page.TotalPages != 2 || len(page.Products) != 2 {
		t.Fatalf("bad envelope: %+v", page)
	}
	for _, p := range page.Products {
		if p.Status != domain.StatusApproved {
			t.Fatalf("default listing leaked status %s", p.Status)
		}
	}
}

func TestListingBadFilter(t *testing.T) {
	app, _ := newTestApp(t)

	for _, q := range []string{"page=0", "pageSize=-2", "minPrice=0", "minPrice=abc", "categoryId=x"} {
		resp := doJSON(t, app, "GET", "/api/products?"+q, "", nil)
		if resp.StatusCode != 400 {
			t.Fatalf("%s: want 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestDetailIncrementsViews(t *testing.T) {
	app, _ := newTestApp(t)

	var first, second domain.Product
	decode(t, doJSON(t, app, "GET", "/api/products/1", "", nil), &first)
	decode(t, doJSON(t, app, "GET", "/api/products/1", "", nil), &second)
	if second.ViewCount != first.ViewCount+1 {
		t.Fatalf("view counter: %d then %d", first.ViewCount, second.ViewCount)
	}

	resp := doJSON(t, app, "GET", "/api/products/9999", "", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown id: want 404, got %d", resp.StatusCode)
	}
}

func TestCreateRequiresSellerRole(t *testing.T) {
	app, _ := newTestApp(t)

	body, ctype := multipartBody(t, map[string]string{
		"category_id": "1", "name": "Cat Tunnel", "price": "19.99", "stock_quantity": "4",
	})
	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", ctype)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("no token: want 401, got %d", resp.StatusCode)
	}

	customerTok := login(t, app, "carol@petsupplies.test")
	body, ctype = multipartBody(t, map[string]string{
		"category_id": "1", "name": "Cat Tunnel", "price": "19.99",
	})
	req = httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+customerTok)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Fatalf("customer: want 403, got %d", resp.StatusCode)
	}

	sellerTok := login(t, app, "paws@petsupplies.test")
	body, ctype = multipartBody(t, map[string]string{
		"category_id": "2", "name": "Cat Tunnel", "brand": "WhiskerWorks",
		"price": "19.99", "stock_quantity": "4",
	})
	req = httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+sellerTok)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("seller: want 201, got %d", resp.StatusCode)
	}
	var created domain.Product
	decode(t, resp, &created)
	if created.Status != domain.StatusPending || created.SellerID != 1 {
		t.Fatalf("created product wrong: %+v", created)
	}
}

func TestUpdateOwnership(t *testing.T) {
	app, _ := newTestApp(t)

	// product 1 belongs to seller 1 (paws); tails must get 403
	tailsTok := login(t, app, "tails@petsupplies.test")
	body, ctype := multipartBody(t, map[string]string{"name": "Hijacked"})
	req := httptest.NewRequest("PUT", "/api/products/1", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+tailsTok)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Fatalf("foreign seller: want 403, got %d", resp.StatusCode)
	}

	pawsTok := login(t, app, "paws@petsupplies.test")
	body, ctype = multipartBody(t, map[string]string{"price": "44.00"})
	req = httptest.NewRequest("PUT", "/api/products/1", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+pawsTok)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("owner: want 200, got %d", resp.StatusCode)
	}

	body, ctype = multipartBody(t, map[string]string{"name": "X"})
	req = httptest.NewRequest("PUT", "/api/products/9999", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+pawsTok)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown id: want 404, got %d", resp.StatusCode)
	}
}

func TestApproveRejectFlow(t *testing.T) {
	app, db := newTestApp(t)

	sellerTok := login(t, app, "paws@petsupplies.test")
	resp := doJSON(t, app, "POST", "/api/products/4/approve", sellerTok, nil)
	if resp.StatusCode != 403 {
		t.Fatalf("seller approving: want 403, got %d", resp.StatusCode)
	}

	adminTok := login(t, app, "admin@petsupplies.test")
	resp = doJSON(t, app, "POST", "/api/products/4/approve", adminTok, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("admin approve: want 200, got %d", resp.StatusCode)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE user_id=3`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 notification for the seller, got %d", n)
	}

	// reject without a reason is a 400
	resp = doJSON(t, app, "POST", "/api/products/4/reject", adminTok, fiber.Map{"reason": ""})
	if resp.StatusCode != 400 {
		t.Fatalf("empty reason: want 400, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/products/4/reject", adminTok, fiber.Map{"reason": "incomplete listing"})
	if resp.StatusCode != 200 {
		t.Fatalf("reject: want 200, got %d", resp.StatusCode)
	}
}

func TestNotificationsSurface(t *testing.T) {
	app, _ := newTestApp(t)

	adminTok := login(t, app, "admin@petsupplies.test")
	if resp := doJSON(t, app, "POST", "/api/products/4/approve", adminTok, nil); resp.StatusCode != 200 {
		t.Fatalf("approve: %d", resp.StatusCode)
	}

	tailsTok := login(t, app, "tails@petsupplies.test")
	resp := doJSON(t, app, "GET", "/api/notifications", tailsTok, nil)
	var notes []domain.Notification
	decode(t, resp, &notes)
	if len(notes) != 1 || notes[0].Read {
		t.Fatalf("want one unread notification, got %+v", notes)
	}
	if !strings.Contains(notes[0].Message, "approved") {
		t.Fatalf("unexpected message %q", notes[0].Message)
	}

	if resp := doJSON(t, app, "POST", "/api/notifications/1/read", tailsTok, nil); resp.StatusCode != 200 {
		t.Fatalf("mark read: %d", resp.StatusCode)
	}
	// other users cannot see or flip it
	pawsTok := login(t, app, "paws@petsupplies.test")
	if resp := doJSON(t, app, "POST", "/api/notifications/1/read", pawsTok, nil); resp.StatusCode != 404 {
		t.Fatalf("foreign notification: want 404, got %d", resp.StatusCode)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	db.MustExec(`UPDATE categories SET active=0 WHERE id=3`)

	resp := doJSON(t, app, "GET", "/api/products/categories", "", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var cats []domain.Category
	decode(t, resp, &cats)
	if len(cats) != 2 {
		t.Fatalf("want 2 active categories, got %d", len(cats))
	}
	for _, c := range cats {
		if !c.Active {
			t.Fatalf("inactive category leaked: %+v", c)
		}
	}
}
