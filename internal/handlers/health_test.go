package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	healthy := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), zap.NewNop())
	rec := httptest.NewRecorder()
	healthy.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") }), zap.NewNop())
	rec = httptest.NewRecorder()
	down.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Main Root"}`, rec.Body.String())
}
