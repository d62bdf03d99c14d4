package handlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const registeredMessage = "Successfully registered"

// UserHandler provides account endpoints.
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// UserRouter registers user routes on the given router.
func UserRouter(
	r chi.Router,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewUserHandler(userService, logger)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/create-admin", handler.CreateAdmin)
	r.With(authMiddleware).Get("/me", handler.Me)
	r.With(authMiddleware).Get("/list", handler.List)
	r.With(authMiddleware).Post("/{userID}/promote", handler.Promote)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newRegisterResponse(user))
}

// Login accepts an OAuth2 password form (username, password) or the same
// fields as JSON and returns a bearer token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseLoginRequest(w, r)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	token, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	writeJSON(w, http.StatusOK, h.userService.Current(user))
}

func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	key := r.URL.Query().Get("admin_key")
	user, err := h.userService.CreateAdmin(r.Context(), req.Email, req.Password, key)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newRegisterResponse(user))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, notAuthenticatedDetail)
		return
	}
	id, err := parseID(r, "userID", "user")
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	user, err := h.userService.Promote(r.Context(), id, caller)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, PromoteResponse{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
}

func parseLoginRequest(w http.ResponseWriter, r *http.Request) (LoginRequest, error) {
	var req LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := bindJSON(w, r, &req); err != nil {
			return LoginRequest{}, err
		}
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return LoginRequest{}, apperr.InvalidInput("invalid form body")
	}
	req.Username = strings.TrimSpace(r.PostForm.Get("username"))
	req.Password = r.PostForm.Get("password")
	if err := validateRequest(&req); err != nil {
		return LoginRequest{}, err
	}
	return req, nil
}

func newRegisterResponse(user types.User) RegisterResponse {
	return RegisterResponse{
		User:    UserSummary{ID: user.ID, Email: user.Email},
		Message: registeredMessage,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserSummary struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type RegisterResponse struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PromoteResponse struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
