package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

// PostHandler provides HTTP handlers for posts.
type PostHandler struct {
	postService *services.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService *services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

// PostRouter registers post routes. Every route requires a bearer token.
func PostRouter(
	r chi.Router,
	postService *services.PostService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewPostHandler(postService, logger)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/create", handler.CreatePost)
		r.Get("/list", handler.ListPosts)
		r.Get("/me", handler.ListMyPosts)
		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", handler.GetPost)
			r.Put("/update", handler.UpdatePost)
			r.Delete("/delete", handler.DeletePost)
		})
	})
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	input, err := decodePost(w, r)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	created, err := h.postService.Create(r.Context(), input, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}

	posts, err := h.postService.ListMine(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "postID", "post")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	id, err := parseID(r, "postID", "post")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	input, err := decodePost(w, r)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	updated, err := h.postService.Update(r.Context(), id, input, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	id, err := parseID(r, "postID", "post")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	if err := h.postService.Delete(r.Context(), id, caller); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodePost(w http.ResponseWriter, r *http.Request) (types.PostInput, error) {
	var req PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return types.PostInput{}, err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateRequest(&req); err != nil {
		return types.PostInput{}, err
	}
	return types.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}, nil
}

type PostRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Content    string `json:"content" validate:"required"`
	CategoryID int    `json:"category_id" validate:"required,gte=1"`
}
