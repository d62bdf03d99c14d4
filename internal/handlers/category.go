package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
)

// CategoryHandler provides HTTP handlers for categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *services.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, logger: logger}
}

// CategoryRouter registers category routes. Every route requires a bearer
// token and writes additionally require an admin.
func CategoryRouter(
	r chi.Router,
	categoryService *services.CategoryService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewCategoryHandler(categoryService, logger)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/create", handler.CreateCategory)
		r.Get("/list", handler.ListCategories)
		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", handler.GetCategory)
			r.Put("/update", handler.UpdateCategory)
			r.Delete("/delete", handler.DeleteCategory)
		})
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	var req CategoryRequest
	if err := decodeCategory(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	created, err := h.categoryService.Create(r.Context(), req.Title, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "categoryID", "category")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// UpdateCategory answers 201 on success.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	id, err := parseID(r, "categoryID", "category")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	var req CategoryRequest
	if err := decodeCategory(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	updated, err := h.categoryService.Update(r.Context(), id, req.Title, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, updated)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	id, err := parseID(r, "categoryID", "category")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	if err := h.categoryService.Delete(r.Context(), id, caller); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCategory(w http.ResponseWriter, r *http.Request, req *CategoryRequest) error {
	if err := decodeJSON(w, r, req); err != nil {
		return err
	}
	req.Title = strings.TrimSpace(req.Title)
	return validateRequest(req)
}

type CategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}
