package products

import (
	"context"
	"errors"
	"net/http"

	"github.com/burgerhub/menu-ordering/app/api"
	"github.com/burgerhub/menu-ordering/models"
	"go.uber.org/zap"
)

// DeleteConfirmationPrompt is returned when a delete arrives without ?confirm=true.
const DeleteConfirmationPrompt = "Tem certeza que deseja excluir este produto?"

type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PriceLabel   string  `json:"priceLabel"`
	Image        string  `json:"image"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	IsAvailable  bool    `json:"isAvailable"`
}

type ProductStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	SaveProductDraft(ctx context.Context, draft models.ProductDraft) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	repo   ProductStore
	logger *zap.Logger
}

func NewProductHandler(r ProductStore, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{repo: r, logger: logger}
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toResponse(p, categories)
	}
	api.OKResponse(w, response)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input models.ProductDraft
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.ID = ""

	h.save(w, r, input, http.StatusCreated)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input models.ProductDraft
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.ID = r.PathValue("id")

	h.save(w, r, input, http.StatusOK)
}

func (h *ProductHandler) save(w http.ResponseWriter, r *http.Request, draft models.ProductDraft, status int) {
	product, err := h.repo.SaveProductDraft(r.Context(), draft)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		api.ValidationResponse(w, vErr)
		return
	}
	if err != nil {
		h.logger.Error("save product failed", zap.String("product_id", draft.ID), zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to save product")
		return
	}

	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		// The product is saved; only the label lookup failed.
		h.logger.Warn("list categories failed", zap.Error(err))
	}

	h.logger.Info("product saved", zap.String("product_id", product.ID))
	api.JSONResponse(w, status, toResponse(product, categories))
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		api.ErrorResponse(w, http.StatusPreconditionRequired, DeleteConfirmationPrompt)
		return
	}

	id := r.PathValue("id")
	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to delete product")
		return
	}

	h.logger.Info("product deleted", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(p models.Product, categories []models.Category) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		PriceLabel:   models.FormatCurrency(p.Price),
		Image:        p.Image,
		CategoryID:   p.CategoryID,
		CategoryName: models.CategoryLabel(categories, p.CategoryID),
		IsAvailable:  p.IsAvailable,
	}
}
