package services

import (
	"petsupplies/internal/domain"
	"petsupplies/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ProductQuery is one listing request. Nil/empty optional fields skip
// their predicate; Status defaults to Approved at the HTTP layer so an
// explicitly empty status lists every status.
type ProductQuery struct {
	CategoryID *int64
	Status     string
	SearchTerm string
	MinPrice   *float64
	MaxPrice   *float64
	Brand      string
	Page       int
	PageSize   int
}

type ProductPage struct {
	TotalItems int              `json:"total_items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Products   []domain.Product `json:"products"`
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	cats, err := s.Cats.ListActive()
	if err != nil {
		return nil, domain.PersistenceFailure(err)
	}
	return cats, nil
}

// ListProducts counts the full match set, then returns the requested
// window. A page past the end yields an empty list, not an error.
func (s *CatalogService) ListProducts(q ProductQuery) (ProductPage, error) {
	if q.Page < 1 {
		return ProductPage{}, domain.Invalid("page must be >= 1")
	}
	if q.PageSize < 1 {
		return ProductPage{}, domain.Invalid("page size must be >= 1")
	}
	if q.MinPrice != nil && *q.MinPrice <= 0 {
		return ProductPage{}, domain.Invalid("minPrice must be positive")
	}
	if q.MaxPrice != nil && *q.MaxPrice <= 0 {
		return ProductPage{}, domain.Invalid("maxPrice must be positive")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return ProductPage{}, domain.Invalid("minPrice must not exceed maxPrice")
	}

	f := repos.ProductFilter{
		CategoryID: q.CategoryID,
		Status:     q.Status,
		SearchTerm: q.SearchTerm,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Brand:      q.Brand,
	}

	total, err := s.Prods.Count(f)
	if err != nil {
		return ProductPage{}, domain.PersistenceFailure(err)
	}

	offset := (q.Page - 1) * q.PageSize
	items, err := s.Prods.List(f, q.PageSize, offset)
	if err != nil {
		return ProductPage{}, domain.PersistenceFailure(err)
	}

	return ProductPage{
		TotalItems: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
		Products:   items,
	}, nil
}
