package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktrack/internal/common"
	"github.com/dmitrijs2005/tasktrack/internal/server/models"
	"github.com/labstack/echo/v4"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	Token string `json:"token"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type toggleTaskResponse struct {
	Message   string `json:"message"`
	Completed bool   `json:"completed"`
}

type deleteTaskResponse struct {
	Message     string       `json:"message"`
	DeletedTask *models.Task `json:"deletedTask"`
}

func (s *HTTPServer) handleRoot(c echo.Context) error {
	return c.String(http.StatusOK, "TaskTrack API")
}

func (s *HTTPServer) handleSignup(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}

	log.Info(ctx, "Registration request", "email", req.Email)

	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		// Duplicate emails deliberately surface as a generic store failure,
		// matching the public contract.
		log.Error(ctx, "signup failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error signing up user"})
	}

	log.Info(ctx, "Registered", "username", user.Username)
	return c.JSON(http.StatusCreated, signupResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (s *HTTPServer) handleSignin(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User not found"})
		case errors.Is(err, common.ErrorInvalidCredentials):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid credentials"})
		default:
			log.Error(ctx, "signin failed", "error", err.Error())
			return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error signing in"})
		}
	}

	return c.JSON(http.StatusOK, signinResponse{Token: token})
}

// ownerID reads the authenticated account id set by accessTokenMiddleware.
func ownerID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func (s *HTTPServer) handleListTasks(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	result, err := s.tasks.List(ctx, ownerID(c))
	if err != nil {
		log.Error(ctx, "list tasks failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error fetching tasks"})
	}

	if result == nil {
		result = []*models.Task{}
	}
	return c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleCreateTask(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}

	task, err := s.tasks.Create(ctx, ownerID(c), req.Title, req.Description)
	if err != nil {
		log.Error(ctx, "create task failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error insert task"})
	}

	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) handleToggleTask(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	completed, err := s.tasks.Toggle(ctx, ownerID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Task not found or unauthorized"})
		}
		log.Error(ctx, "toggle task failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error updating task"})
	}

	return c.JSON(http.StatusOK, toggleTaskResponse{Message: "Task updated successfully", Completed: completed})
}

func (s *HTTPServer) handleDeleteTask(c echo.Context) error {
	log := s.requestLogger(c)
	ctx := c.Request().Context()

	deleted, err := s.tasks.Delete(ctx, ownerID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Task not found or unauthorized"})
		}
		log.Error(ctx, "delete task failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error delete task"})
	}

	return c.JSON(http.StatusOK, deleteTaskResponse{Message: "Task deleted successfully", DeletedTask: deleted})
}
