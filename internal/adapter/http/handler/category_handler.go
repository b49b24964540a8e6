package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/adapter/http/dto"
	"github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/usecase"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput(middleware.WorkspaceID(r.Context())))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create category", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Get retrieves a category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	category, err := h.categoryUC.GetCategory(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get category", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Update renames or re-parents a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.UpdateCategory(r.Context(), req.ToUseCaseInput(middleware.WorkspaceID(r.Context()), id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update category", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// List lists all categories of the workspace.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context(), middleware.WorkspaceID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Delete removes a category. Categories with children or referenced by
// transactions are refused.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	if err := h.categoryUC.DeleteCategory(r.Context(), middleware.WorkspaceID(r.Context()), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete category", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AggregateTree returns the category tree with transaction totals rolled up
// from leaves into groups over a date range.
func (h *CategoryHandler) AggregateTree(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	nodes, err := h.categoryUC.AggregateTree(r.Context(), usecase.AggregateTreeInput{
		WorkspaceID: middleware.WorkspaceID(r.Context()),
		From:        from,
		To:          to,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to aggregate categories", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryNodesFromDomain(nodes))
}
