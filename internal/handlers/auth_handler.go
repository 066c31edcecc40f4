package handlers

import (
	"net/http"
	"time"

	"lyhu_portal/internal/middleware"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	users        services.UserService
	sessionTTL   time.Duration
	secureCookie bool
	log          logrus.FieldLogger
}

func NewAuthHandler(users services.UserService, sessionTTL time.Duration, secureCookie bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
		log:          log.WithField("handler", "auth"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"token":    token,
		"redirect": services.DashboardPath(user.Role),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/login"})
}

// Me reports the signed-in user, or a null user with the login redirect.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil, "redirect": "/login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "redirect": services.DashboardPath(user.Role)})
}
