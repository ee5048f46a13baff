// Package http exposes the TaskKeeper API over HTTP: the signup/login
// endpoints, the bearer-token middleware, and the task CRUD routes that
// run behind it.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ikratov/taskkeeper/internal/logging"
	"github.com/ikratov/taskkeeper/internal/server/auth"
	"github.com/ikratov/taskkeeper/internal/server/tasks"
	"github.com/ikratov/taskkeeper/internal/server/users"
)

type Server struct {
	address string
	router  *gin.Engine
	logger  logging.Logger
	users   *users.Service
	tasks   *tasks.Service
	tokens  *auth.TokenService
}

func NewServer(address string, l logging.Logger, us *users.Service, ts *tasks.Service, tokens *auth.TokenService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		tokens:  tokens,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", s.handleSignup)
			authRoutes.POST("/login", s.handleLogin)
		}

		// authRequired is the sole gate: nothing below runs without a
		// verified identity in the request context.
		taskRoutes := api.Group("/tasks")
		taskRoutes.Use(s.authRequired())
		{
			taskRoutes.GET("", s.handleListTasks)
			taskRoutes.POST("", s.handleCreateTask)
			taskRoutes.PUT("/:id", s.handleUpdateTask)
			taskRoutes.DELETE("/:id", s.handleDeleteTask)
		}
	}

	return router
}

// Handler exposes the routing tree; used by tests and by Run.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
