package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktrack/internal/common"
	"github.com/dmitrijs2005/tasktrack/internal/logging"
	"github.com/dmitrijs2005/tasktrack/internal/server/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	userIDKey    = "userID"
	usernameKey  = "username"
	requestIDKey = "requestID"
)

// requestIDMiddleware assigns every request a fresh id, echoes it back in
// the X-Request-Id header and makes it available for request-scoped logging.
func (s *HTTPServer) requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}

// requestLogger returns the server logger enriched with the request id.
func (s *HTTPServer) requestLogger(c echo.Context) logging.Logger {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return s.logger.With("request_id", id)
	}
	return s.logger
}

// accessTokenMiddleware gates the /tasks group. A missing bearer token is
// 401; a token that fails signature or expiry checks is 403. On success the
// decoded identity is attached to the request context, so handlers never
// trust client-supplied owner ids.
func (s *HTTPServer) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		header := c.Request().Header.Get(echo.HeaderAuthorization)

		var accessToken string
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			accessToken = after
		}
		if len(accessToken) == 0 {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Access denied. No token provided."})
		}

		userID, username, err := auth.ParseToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return c.JSON(http.StatusForbidden, messageResponse{Message: "Token expired"})
			}
			return c.JSON(http.StatusForbidden, messageResponse{Message: "Invalid token"})
		}

		c.Set(userIDKey, userID)
		c.Set(usernameKey, username)

		return next(c)
	}
}
