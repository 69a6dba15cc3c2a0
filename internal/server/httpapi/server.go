// Package httpapi exposes the task-tracking service as an HTTP/JSON API:
// open signup/signin endpoints and a token-gated /tasks resource.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktrack/internal/logging"
	"github.com/dmitrijs2005/tasktrack/internal/server/models"
	"github.com/labstack/echo/v4"
)

// userService is the slice of UserService used by handlers.
type userService interface {
	Register(ctx context.Context, username string, email string, password string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// taskService is the slice of TaskService used by handlers.
type taskService interface {
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, ownerID string, title string, description string) (*models.Task, error)
	Toggle(ctx context.Context, ownerID string, taskID string) (bool, error)
	Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
}

type HTTPServer struct {
	address   string
	users     userService
	tasks     taskService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us userService, ts taskService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// routes assembles the echo instance with middleware and all endpoints.
// Split out from Run so tests can drive the router directly.
func (s *HTTPServer) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestIDMiddleware)

	e.GET("/", s.handleRoot)
	e.POST("/signup", s.handleSignup)
	e.POST("/signin", s.handleSignin)

	g := e.Group("/tasks", s.accessTokenMiddleware)
	g.GET("", s.handleListTasks)
	g.POST("", s.handleCreateTask)
	g.PUT("/:id", s.handleToggleTask)
	g.DELETE("/:id", s.handleDeleteTask)

	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {

	e := s.routes()

	srv := &http.Server{
		Addr:    s.address,
		Handler: e,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
