package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/burgerhub/menu-ordering/app/api"
	"github.com/burgerhub/menu-ordering/models"
	"go.uber.org/zap"
)

// DeleteConfirmationPrompt is returned when a delete arrives without ?confirm=true.
const DeleteConfirmationPrompt = "Tem certeza que deseja excluir esta categoria? Isso pode afetar produtos vinculados."

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategoryDraft(ctx context.Context, draft models.CategoryDraft) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	repo   CategoryProvider
	logger *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, logger: logger}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c)
	}
	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input models.CategoryDraft
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// Creation always mints a fresh id.
	input.ID = ""

	h.save(w, r, input, http.StatusCreated)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input models.CategoryDraft
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.ID = r.PathValue("id")

	h.save(w, r, input, http.StatusOK)
}

func (h *CategoryHandler) save(w http.ResponseWriter, r *http.Request, draft models.CategoryDraft, status int) {
	category, err := h.repo.SaveCategoryDraft(r.Context(), draft)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		api.ValidationResponse(w, vErr)
		return
	}
	if err != nil {
		h.logger.Error("save category failed", zap.String("category_id", draft.ID), zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to save category")
		return
	}

	h.logger.Info("category saved", zap.String("category_id", category.ID))
	api.JSONResponse(w, status, toResponse(category))
}

// HandleDelete removes a category once the caller confirms with ?confirm=true.
// Products in the category are left untouched.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		api.ErrorResponse(w, http.StatusPreconditionRequired, DeleteConfirmationPrompt)
		return
	}

	id := r.PathValue("id")
	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		h.logger.Error("delete category failed", zap.String("category_id", id), zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to delete category")
		return
	}

	h.logger.Info("category deleted", zap.String("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}
