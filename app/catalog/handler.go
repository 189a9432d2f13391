package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/burgerhub/menu-ordering/app/api"
	"github.com/burgerhub/menu-ordering/models"
	"go.uber.org/zap"
)

type Response struct {
	Heading  string    `json:"heading"`
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	PriceLabel  string   `json:"priceLabel"`
	Image       string   `json:"image"`
	IsAvailable bool     `json:"isAvailable"`
	Category    Category `json:"category"`
}

type ProductProvider interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type CatalogHandler struct {
	repo   ProductProvider
	logger *zap.Logger
}

func NewCatalogHandler(r ProductProvider, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   r,
		logger: logger,
	}
}

// HandleGet lists the menu filtered by ?category= (an id or "all") and ?q=.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	filters := models.ProductFilters{
		CategoryID: r.URL.Query().Get("category"),
		Query:      r.URL.Query().Get("q"),
	}

	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	res := models.FilterProducts(products, filters)
	out := make([]Product, len(res))
	for i, p := range res {
		out[i] = toProduct(p, categories)
	}

	api.OKResponse(w, Response{
		Heading:  models.HeadingFor(categories, filters.CategoryID),
		Total:    len(out),
		Products: out,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetProduct(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("get product failed", zap.String("product_id", id), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.OKResponse(w, toProduct(*product, categories))
}

func toProduct(p models.Product, categories []models.Category) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		PriceLabel:  models.FormatCurrency(p.Price),
		Image:       p.Image,
		IsAvailable: p.IsAvailable,
		Category: Category{
			ID:   p.CategoryID,
			Name: models.CategoryLabel(categories, p.CategoryID),
		},
	}
}
