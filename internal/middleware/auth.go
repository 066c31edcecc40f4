package middleware

import (
	"context"
	"net/http"
	"strings"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "lyhu_session"
	SessionHeader = "X-Session-Token"

	userKey = "currentUser"
)

// Decision is the outcome of checking a user against a protected area.
type Decision int

const (
	Authorized Decision = iota
	Unauthenticated
	WrongRole
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case WrongRole:
		return "wrong_role"
	}
	return "unknown"
}

// GuardResult carries where a rejected user should be sent.
type GuardResult struct {
	Decision Decision
	Redirect string
}

// Guard decides whether user may enter the area reserved for required.
func Guard(user *models.User, required models.UserRole) GuardResult {
	if user == nil {
		return GuardResult{Decision: Unauthenticated, Redirect: "/login"}
	}
	if user.Role != required {
		return GuardResult{Decision: WrongRole, Redirect: services.DashboardPath(user.Role)}
	}
	return GuardResult{Decision: Authorized}
}

type CurrentUserReader interface {
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)
}

// SessionToken reads the token from the session cookie or, failing that, the header.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

// LoadUser resolves the session of every request. Anonymous requests pass through.
func LoadUser(users CurrentUserReader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetCurrentUser(c.Request.Context(), SessionToken(c))
		if err != nil {
			log.WithError(err).Error("Failed to read session")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session store unavailable"})
			return
		}
		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abort(c, GuardResult{Decision: Unauthenticated, Redirect: "/login"})
			return
		}
		c.Next()
	}
}

// RequireRole admits only users holding role.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Guard(CurrentUser(c), role)
		if result.Decision != Authorized {
			abort(c, result)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, result GuardResult) {
	status := http.StatusUnauthorized
	message := "Authentication required"
	if result.Decision == WrongRole {
		status = http.StatusForbidden
		message = "Access denied for this role"
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":    message,
		"redirect": result.Redirect,
	})
}

// RequestLogger logs one line per request.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
			"client": c.ClientIP(),
		})
		if user := CurrentUser(c); user != nil {
			entry = entry.WithField("user_id", user.ID)
		}
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Debug("Request handled")
	}
}
