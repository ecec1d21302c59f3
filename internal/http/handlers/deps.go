package handlers

import (
	"petsupplies/internal/repos"
	"petsupplies/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler      *ProductHandler
	NotificationHandler *NotificationHandler
	AuthHandler         *AuthHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, images services.ImageStore) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	sellerRepo := repos.NewSellerRepo(db)
	noteRepo := repos.NewNotificationRepo(db)
	actRepo := repos.NewActivityRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	productSvc := &services.ProductService{
		Prods:   prodRepo,
		Sellers: sellerRepo,
		Notes:   noteRepo,
		Audit:   actRepo,
		Images:  images,
	}
	noteSvc := services.NewNotificationService(noteRepo)

	return &Deps{
		ProductHandler:      &ProductHandler{Catalog: catalogSvc, Products: productSvc},
		NotificationHandler: &NotificationHandler{Notes: noteSvc},
		AuthHandler:         &AuthHandler{Auth: auth},
	}
}
