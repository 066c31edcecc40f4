package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers map[string]*models.User

func (s stubUsers) GetCurrentUser(_ context.Context, token string) (*models.User, error) {
	if token == "down" {
		return nil, errors.New("redis down")
	}
	return s[token], nil
}

var (
	sales = &models.User{ID: "2", Role: models.RoleSales}
	ctv   = &models.User{ID: "3", Role: models.RoleCTV}
)

func TestGuard(t *testing.T) {
	assert.Equal(t, GuardResult{Decision: Unauthenticated, Redirect: "/login"}, Guard(nil, models.RoleAdmin))
	assert.Equal(t, GuardResult{Decision: WrongRole, Redirect: "/sales"}, Guard(sales, models.RoleAdmin))
	assert.Equal(t, GuardResult{Decision: Authorized}, Guard(sales, models.RoleSales))
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(LoadUser(stubUsers{"s": sales, "c": ctv}, logger.Discard()))
	r.GET("/sales", RequireRole(models.RoleSales), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/me", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path string, setup func(*http.Request)) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRequireRole(t *testing.T) {
	r := newRouter()

	w, body := do(r, "/sales", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", body["redirect"])

	w, body = do(r, "/sales", func(req *http.Request) { req.Header.Set(SessionHeader, "c") })
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/ctv", body["redirect"])

	w, body = do(r, "/sales", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s"})
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", body["id"])
}

func TestRequireUser(t *testing.T) {
	r := newRouter()

	w, _ := do(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, "/me", func(req *http.Request) { req.Header.Set(SessionHeader, "c") })
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoadUser_StoreFailure(t *testing.T) {
	w, _ := do(newRouter(), "/me", func(req *http.Request) { req.Header.Set(SessionHeader, "down") })
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
