package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/capstone-backend/internal/handlers"
	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/requestdata"
	"github.com/yungbote/capstone-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// RequireAuth rejects requests without a valid session cookie and stashes the
// authenticated student id in the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(handlers.SessionCookieName)
		if err != nil || cookie == "" {
			handlers.AbortError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "Authentication required")
			return
		}
		studentID, err := am.authService.ParseSessionToken(cookie)
		if err != nil {
			am.log.Debug("Session token rejected", "error", err)
			handlers.AbortError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "Authentication required")
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{StudentID: studentID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
