package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dmitriy-lar/SocialNetworkAPI/config"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/db"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/handlers"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/logger"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/metrics"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
)

const requestTimeout = 60 * time.Second

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	l          *zap.Logger
}

// New opens the database, wires repositories and services, and registers
// every route.
func New(ctx context.Context, cfg config.Config, l *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.MigrateUp(db.DSN(cfg)); err != nil {
			_ = dbConn.Close()
			return nil, err
		}
		l.Info("database migrations applied")
	}

	router := NewRouter(dbConn, cfg, l)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		l:          l,
	}, nil
}

// NewRouter builds the HTTP handler tree on top of an open database.
func NewRouter(dbConn *sql.DB, cfg config.Config, l *zap.Logger) *chi.Mux {
	userRepo := store.NewUserRepository(dbConn)
	categoryRepo := store.NewCategoryRepository(dbConn)
	postRepo := store.NewPostRepository(dbConn)
	likeRepo := store.NewLikeRepository(dbConn)

	creds := credentials.New(cfg.Auth.JWTSecret)
	authService := services.NewAuthService(userRepo, creds)
	userService := services.NewUserService(userRepo, creds, cfg.Auth.TokenTTL, cfg.Auth.AdminKey)
	categoryService := services.NewCategoryService(categoryRepo)
	postService := services.NewPostService(postRepo, categoryRepo)
	likeService := services.NewLikeService(likeRepo, postRepo)

	authMiddleware := handlers.RequireAuth(authService, l)
	health := handlers.NewHealthHandler(dbConn, l)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		logger.RequestLogger(l),
		middleware.Recoverer,
		metrics.InstrumentHandler,
		middleware.Timeout(requestTimeout),
	)
	router.Get("/", handlers.Root)
	router.Get("/healthz", health.Healthz)
	router.Handle("/metrics", metrics.Handler())
	router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, authMiddleware, l)
		})
		r.Route("/categories", func(r chi.Router) {
			handlers.CategoryRouter(r, categoryService, authMiddleware, l)
		})
		r.Route("/posts", func(r chi.Router) {
			handlers.PostRouter(r, postService, authMiddleware, l)
		})
		r.Route("/likes", func(r chi.Router) {
			handlers.LikeRouter(r, likeService, authMiddleware, l)
		})
	})

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.l.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
