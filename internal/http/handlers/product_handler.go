package handlers

import (
	"mime/multipart"

	applog "petsupplies/internal/log"
	"petsupplies/internal/services"
	"petsupplies/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog  *services.CatalogService
	Products *services.ProductService
}

// List handles GET /api/products with the filter/pagination query.
// Status defaults to Approved; passing status= explicitly empty lists
// all statuses, mirroring the storefront's long-standing behavior.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	catID, ok := validate.OptionalID(c.Query("categoryId"))
	if !ok {
		return badRequest(c, "categoryId must be a positive integer")
	}
	minPrice, ok := validate.OptionalPrice(c.Query("minPrice"))
	if !ok {
		return badRequest(c, "minPrice must be a positive number")
	}
	maxPrice, ok := validate.OptionalPrice(c.Query("maxPrice"))
	if !ok {
		return badRequest(c, "maxPrice must be a positive number")
	}
	page, ok := validate.Page(c.Query("page"), 1)
	if !ok {
		return badRequest(c, "page must be >= 1")
	}
	pageSize, ok := validate.Page(c.Query("pageSize"), 12)
	if !ok {
		return badRequest(c, "pageSize must be >= 1")
	}

	// Distinguish an absent status (default Approved) from an
	// explicitly empty one, which skips the status predicate.
	status := "Approved"
	if c.Context().QueryArgs().Has("status") {
		status = c.Query("status")
	}

	result, err := h.Catalog.ListProducts(services.ProductQuery{
		CategoryID: catID,
		Status:     status,
		SearchTerm: validate.SearchTerm(c.Query("searchTerm")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Brand:      c.Query("brand"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// Detail handles GET /api/products/:id. Reading a product bumps its
// view counter.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Products.View(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cats)
}

func imageFrom(fh *multipart.FileHeader) (*services.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.ImageUpload{Filename: fh.Filename, Data: f}, func() { _ = f.Close() }, nil
}

// Create handles POST /api/products (multipart, Seller role).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p := principal(c)
	if p.SellerID == 0 {
		applog.Security(c, "product.create.no_seller", map[string]any{"user_id": p.UserID})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": fiber.Map{"kind": "unauthorized", "message": "seller account not found"},
		})
	}

	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		return badRequest(c, "category_id must be a positive integer")
	}
	price, ok := validate.OptionalPrice(c.FormValue("price"))
	if !ok || price == nil {
		return badRequest(c, "price must be a positive number")
	}
	stock := 0
	if raw := c.FormValue("stock_quantity"); raw != "" {
		n, ok := validate.Quantity(raw)
		if !ok {
			return badRequest(c, "stock_quantity must be a non-negative integer")
		}
		stock = n
	}

	in := services.CreateProductInput{
		CategoryID:    catID,
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Brand:         c.FormValue("brand"),
		Price:         *price,
		StockQuantity: stock,
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		img, done, err := imageFrom(fh)
		if err != nil {
			return badRequest(c, "could not read uploaded image")
		}
		defer done()
		in.Image = img
	}

	created, err := h.Products.Create(p, in, c.IP())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": created.ID, "seller_id": p.SellerID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update handles PUT /api/products/:id (multipart, Seller role) with
// patch semantics: only fields present in the form are changed.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	p := principal(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "expected multipart form data")
	}
	get := func(key string) *string {
		if vs, present := form.Value[key]; present && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}

	in := services.UpdateProductInput{
		Name:        get("name"),
		Description: get("description"),
		Brand:       get("brand"),
	}
	if raw := get("price"); raw != nil {
		price, ok := validate.OptionalPrice(*raw)
		if !ok || price == nil {
			return badRequest(c, "price must be a positive number")
		}
		in.Price = price
	}
	if raw := get("stock_quantity"); raw != nil {
		n, ok := validate.Quantity(*raw)
		if !ok {
			return badRequest(c, "stock_quantity must be a non-negative integer")
		}
		in.StockQuantity = &n
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		img, done, err := imageFrom(fh)
		if err != nil {
			return badRequest(c, "could not read uploaded image")
		}
		defer done()
		in.Image = img
	}

	updated, err := h.Products.Update(p, id, in, c.IP())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product updated successfully", "product": updated})
}

// Delete handles DELETE /api/products/:id (Seller or Admin).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Products.Delete(principal(c), id, c.IP()); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// Approve handles POST /api/products/:id/approve (Admin).
func (h *ProductHandler) Approve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Products.Approve(principal(c), id, c.IP()); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.approve", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product approved successfully"})
}

// Reject handles POST /api/products/:id/reject (Admin).
func (h *ProductHandler) Reject(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "expected JSON body with a reason")
	}
	reason, ok := validate.Reason(body.Reason)
	if !ok {
		return badRequest(c, "a rejection reason is required")
	}
	if err := h.Products.Reject(principal(c), id, reason, c.IP()); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.reject", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product rejected successfully"})
}
