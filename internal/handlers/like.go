package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
)

type LikeHandler struct {
	likeService *services.LikeService
	logger      *zap.Logger
}

func NewLikeHandler(likeService *services.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{likeService: likeService, logger: logger}
}

// LikeRouter registers like routes on the given router.
func LikeRouter(
	r chi.Router,
	likeService *services.LikeService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewLikeHandler(likeService, logger)

	r.With(authMiddleware).Post("/add/{postID}", handler.ToggleLike)
}

func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	postID, err := parseID(r, "postID", "post")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	result, err := h.likeService.Toggle(r.Context(), postID, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, LikeResponse{Message: result.Message, Liked: result.Liked})
}

type LikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}
