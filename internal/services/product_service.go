package services

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"petsupplies/internal/domain"
	applog "petsupplies/internal/log"
	"petsupplies/internal/repos"
)

// NotificationSink records a workflow notification for a user.
type NotificationSink interface {
	Notify(userID int64, ntype, title, message string) error
}

// AuditSink appends one activity entry; a nil userID records a system
// action with no actor.
type AuditSink interface {
	Record(userID *int64, actionType, description, ip string) error
}

// ImageStore persists an uploaded image and returns its public path.
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// ProductService owns the product lifecycle: seller-scoped mutations,
// the admin approval workflow and its notification/audit side effects.
// Each write commits independently; a crash between a status change
// and its notification can leave the notification unsent. That gap is
// inherited behavior and is deliberately not papered over with a
// wrapping transaction.
type ProductService struct {
	Prods   *repos.ProductRepo
	Sellers *repos.SellerRepo
	Notes   NotificationSink
	Audit   AuditSink
	Images  ImageStore
}

type ImageUpload struct {
	Filename string
	Data     io.Reader
}

type CreateProductInput struct {
	CategoryID    int64
	Name          string
	Description   string
	Brand         string
	Price         float64
	StockQuantity int
	Image         *ImageUpload
}

// UpdateProductInput carries patch semantics: a nil field leaves the
// stored value unchanged.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Brand         *string
	Price         *float64
	StockQuantity *int
	Image         *ImageUpload
}

// Create inserts a new product owned by the principal's seller record.
// Ownership comes from the session identity, never from client input,
// and the status is forced to Pending whatever the client sent.
func (s *ProductService) Create(p domain.Principal, in CreateProductInput, ip string) (domain.Product, error) {
	if !p.IsSeller() || p.SellerID == 0 {
		return domain.Product{}, domain.Forbidden("seller account required")
	}
	if in.Name == "" {
		return domain.Product{}, domain.Invalid("product name is required")
	}
	if in.Price <= 0 {
		return domain.Product{}, domain.Invalid("price must be positive")
	}
	if in.StockQuantity < 0 {
		return domain.Product{}, domain.Invalid("stock quantity must not be negative")
	}

	prod := domain.Product{
		SellerID:      p.SellerID,
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Description:   in.Description,
		Brand:         in.Brand,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Status:        domain.StatusPending,
	}

	if in.Image != nil {
		path, err := s.Images.Save(in.Image.Filename, in.Image.Data)
		if err != nil {
			return domain.Product{}, domain.StorageFailure(err)
		}
		prod.ImageURL = path
	}

	if err := s.Prods.Create(&prod); err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	if err := s.Audit.Record(&p.UserID, "Product Created",
		fmt.Sprintf("Product '%s' created", prod.Name), ip); err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}

	created, err := s.Prods.Get(prod.ID)
	if err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	return created, nil
}

// Update patches a product owned by the requesting seller. An unknown
// id reports not found; a known id owned by someone else reports
// forbidden, keeping the two cases distinguishable.
func (s *ProductService) Update(p domain.Principal, id int64, in UpdateProductInput, ip string) (domain.Product, error) {
	prod, err := s.getProduct(id)
	if err != nil {
		return domain.Product{}, err
	}
	if !p.IsSeller() || prod.SellerID != p.SellerID {
		return domain.Product{}, domain.Forbidden("you do not own this product")
	}

	if in.Name != nil {
		if *in.Name == "" {
			return domain.Product{}, domain.Invalid("product name must not be empty")
		}
		prod.Name = *in.Name
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}
	if in.Brand != nil {
		prod.Brand = *in.Brand
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return domain.Product{}, domain.Invalid("price must be positive")
		}
		prod.Price = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return domain.Product{}, domain.Invalid("stock quantity must not be negative")
		}
		prod.StockQuantity = *in.StockQuantity
	}
	if in.Image != nil {
		path, err := s.Images.Save(in.Image.Filename, in.Image.Data)
		if err != nil {
			return domain.Product{}, domain.StorageFailure(err)
		}
		prod.ImageURL = path
	}

	if err := s.Prods.Update(prod); err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	if err := s.Audit.Record(&p.UserID, "Product Updated",
		fmt.Sprintf("Product '%s' updated", prod.Name), ip); err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}

	updated, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	return updated, nil
}

// Delete soft-deletes: the row stays, active drops to false, status is
// untouched. Deleting twice is a harmless no-op.
func (s *ProductService) Delete(p domain.Principal, id int64, ip string) error {
	prod, err := s.getProduct(id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() && !(p.IsSeller() && prod.SellerID == p.SellerID) {
		return domain.Forbidden("only the owning seller or an admin may delete")
	}

	if err := s.Prods.SetInactive(id); err != nil {
		return domain.PersistenceFailure(err)
	}
	return s.audit(nil, "Product Deleted", fmt.Sprintf("Product '%s' deleted", prod.Name), ip)
}

// Approve moves the product to Approved and notifies the seller. The
// transition is allowed from any status, matching the store's existing
// review behavior.
func (s *ProductService) Approve(p domain.Principal, id int64, ip string) error {
	if !p.IsAdmin() {
		return domain.Forbidden("admin role required")
	}
	prod, err := s.getProduct(id)
	if err != nil {
		return err
	}

	if err := s.Prods.UpdateStatus(id, domain.StatusApproved); err != nil {
		return domain.PersistenceFailure(err)
	}
	if err := s.notifySeller(prod, "Product Approved",
		fmt.Sprintf("Your product '%s' has been approved and is now live on the store.", prod.Name)); err != nil {
		return err
	}
	return s.audit(nil, "Product Approved", fmt.Sprintf("Product '%s' approved", prod.Name), ip)
}

// Reject moves the product to Rejected; the reason is carried in the
// seller's notification.
func (s *ProductService) Reject(p domain.Principal, id int64, reason, ip string) error {
	if !p.IsAdmin() {
		return domain.Forbidden("admin role required")
	}
	if reason == "" {
		return domain.Invalid("a rejection reason is required")
	}
	prod, err := s.getProduct(id)
	if err != nil {
		return err
	}

	if err := s.Prods.UpdateStatus(id, domain.StatusRejected); err != nil {
		return domain.PersistenceFailure(err)
	}
	if err := s.notifySeller(prod, "Product Rejected",
		fmt.Sprintf("Your product '%s' has been rejected. Reason: %s", prod.Name, reason)); err != nil {
		return err
	}
	return s.audit(nil, "Product Rejected", fmt.Sprintf("Product '%s' rejected", prod.Name), ip)
}

// View reads one product and bumps its view counter. The read mutates
// the row on purpose; callers must not treat it as idempotent.
func (s *ProductService) View(id int64) (domain.Product, error) {
	if _, err := s.getProduct(id); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.IncrementViews(id); err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	prod, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	return prod, nil
}

func (s *ProductService) getProduct(id int64) (domain.Product, error) {
	prod, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFound("product not found")
	}
	if err != nil {
		return domain.Product{}, domain.PersistenceFailure(err)
	}
	return prod, nil
}

// notifySeller resolves the seller's user and appends a notification.
// A missing seller row makes the notification inapplicable: it is
// logged and skipped, not raised. A failed write is a real
// persistence failure and propagates.
func (s *ProductService) notifySeller(prod domain.Product, title, message string) error {
	seller, err := s.Sellers.ByID(prod.SellerID)
	if errors.Is(err, sql.ErrNoRows) {
		applog.Info(nil, "notification.skip", map[string]any{
			"product_id": prod.ID, "seller_id": prod.SellerID,
		})
		return nil
	}
	if err != nil {
		return domain.PersistenceFailure(err)
	}
	if err := s.Notes.Notify(seller.UserID, "Product", title, message); err != nil {
		return domain.PersistenceFailure(err)
	}
	return nil
}

func (s *ProductService) audit(userID *int64, action, description, ip string) error {
	if err := s.Audit.Record(userID, action, description, ip); err != nil {
		return domain.PersistenceFailure(err)
	}
	return nil
}
