package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services/servicestest"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const testAdminKey = "admin-key"

type testAPI struct {
	handler http.Handler
	store   *servicestest.Store
	creds   *credentials.Service
	users   *services.UserService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st := servicestest.NewStore()
	creds := credentials.New("test-secret")
	logger := zap.NewNop()

	auth := services.NewAuthService(st.Users(), creds)
	users := services.NewUserService(st.Users(), creds, time.Hour, testAdminKey)
	categories := services.NewCategoryService(st.Categories())
	posts := services.NewPostService(st.Posts(), st.Categories())
	likes := services.NewLikeService(st.Likes(), st.Posts())
	authMiddleware := RequireAuth(auth, logger)

	router := chi.NewRouter()
	router.Get("/", Root)
	router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			UserRouter(r, users, authMiddleware, logger)
		})
		r.Route("/categories", func(r chi.Router) {
			CategoryRouter(r, categories, authMiddleware, logger)
		})
		r.Route("/posts", func(r chi.Router) {
			PostRouter(r, posts, authMiddleware, logger)
		})
		r.Route("/likes", func(r chi.Router) {
			LikeRouter(r, likes, authMiddleware, logger)
		})
	})

	return &testAPI{handler: router, store: st, creds: creds, users: users}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) postForm(t *testing.T, path, form string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// login registers email (as admin when asked) and returns a bearer token.
func (a *testAPI) login(t *testing.T, email string, admin bool) (types.User, string) {
	t.Helper()
	var (
		user types.User
		err  error
	)
	if admin {
		user, err = a.users.SeedAdmin(context.Background(), email, "pw")
	} else {
		user, err = a.users.Register(context.Background(), email, "pw")
	}
	require.NoError(t, err)
	token, err := a.creds.IssueToken(email, time.Hour)
	require.NoError(t, err)
	return user, token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(raw)
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[ErrorResponse](t, rec).Detail
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
