package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPrincipalIsInRole(t *testing.T) {
	admin := Principal{Name: "Admin", Role: "admin"}
	assert.True(t, admin.IsInRole("admin"))
	assert.True(t, admin.IsInRole("ADMIN"))
	// Only the admin role can ever be granted.
	assert.False(t, admin.IsInRole("moder"))
	assert.False(t, admin.IsInRole(""))

	assert.True(t, Principal{Name: "x", Role: "Admin"}.IsInRole("admin"))
	assert.False(t, Principal{Name: "u", Role: "notadmin"}.IsInRole("admin"))
	assert.False(t, Principal{Name: "u", Role: "administrator"}.IsInRole("admin"))
}

func newGateEngine(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	chain := append([]gin.HandlerFunc{TrustedAuth(HeaderAuthProvider())}, extra...)
	chain = append(chain, handler)
	engine.GET("/probe", chain...)
	return engine
}

func TestTrustedAuthMissingHeaders(t *testing.T) {
	engine := newGateEngine(func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name     string
		username string
		role     string
	}{
		{"no headers", "", ""},
		{"username only", "Admin", ""},
		{"role only", "", "admin"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if tc.username != "" {
			req.Header.Set(HeaderUsername, tc.username)
		}
		if tc.role != "" {
			req.Header.Set(HeaderRole, tc.role)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.name)
	}
}

func TestTrustedAuthAttachesPrincipal(t *testing.T) {
	var got Principal
	engine := newGateEngine(func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		assert.True(t, ok)
		got = principal
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderUsername, "user1")
	req.Header.Set(HeaderRole, "notadmin")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user1", got.Name)
	assert.Equal(t, "notadmin", got.Role)
}

func TestRoleRequired(t *testing.T) {
	engine := newGateEngine(func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, RoleRequired("admin"))

	// Non-admin role token: authenticated but forbidden.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderUsername, "user1")
	req.Header.Set(HeaderRole, "notadmin")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin role token passes.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderUsername, "Admin")
	req.Header.Set(HeaderRole, "admin")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredWithoutGate(t *testing.T) {
	// RoleRequired on its own rejects as unauthenticated when no gate ran.
	engine := gin.New()
	engine.GET("/probe", RoleRequired("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
