package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "capstone_session"

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	handlerLog := log.With("handler", "AuthHandler")
	return &AuthHandler{log: handlerLog, authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidStudentID, "Invalid student ID format. Must be 9 digits.")
		return
	}

	ah.log.Info("Login attempt", "student_id", req.StudentID)

	result, err := ah.authService.Login(c.Request.Context(), req.StudentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	token, err := ah.authService.MintSessionToken(result.StudentID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, apierr.CodeDatabaseError, "Failed to create session")
		return
	}
	ah.setSessionCookie(c, token, int(ah.authService.SessionTTL().Seconds()))

	ah.log.Info("Login successful", "student_id", result.StudentID, "is_new_user", result.IsNewUser)
	RespondOK(c, result)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.setSessionCookie(c, "", -1)
	RespondOK(c, gin.H{"message": "Logged out successfully"})
}

func (ah *AuthHandler) Session(c *gin.Context) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false, "studentId": nil})
		return
	}
	studentID, err := ah.authService.ParseSessionToken(cookie)
	if err != nil {
		// Expired or malformed: clear the cookie so the client recovers.
		ah.setSessionCookie(c, "", -1)
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false, "studentId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isLoggedIn": true, "studentId": studentID})
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}
