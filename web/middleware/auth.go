package middleware

import (
	"net/http"
	"strings"

	"usergate/database/model"
	"usergate/web/entity"

	"github.com/gin-gonic/gin"
)

// Trusted request headers attached by an upstream authority. Login is the
// only legitimate issuer of these values.
const (
	HeaderUsername = "X-Username"
	HeaderRole     = "X-Role"
)

const principalKey = "principal"

// Principal is the identity attached to a request once the gate accepted it.
type Principal struct {
	Name string
	Role string
}

// IsInRole reports whether the principal satisfies the given role. Only a
// query for the admin role can ever succeed, and only when the carried role
// equals admin; both comparisons are case-insensitive.
func (p Principal) IsInRole(role string) bool {
	return strings.EqualFold(role, model.RoleAdmin) && strings.EqualFold(p.Role, model.RoleAdmin)
}

// AuthProvider derives a request principal. Returning false means the
// request carries no usable identity.
type AuthProvider func(c *gin.Context) (Principal, bool)

// HeaderAuthProvider trusts the X-Username and X-Role headers as-is. Their
// presence is validated, their authenticity is not; a verified token decode
// can be swapped in without touching the gate.
func HeaderAuthProvider() AuthProvider {
	return func(c *gin.Context) (Principal, bool) {
		username := c.GetHeader(HeaderUsername)
		role := c.GetHeader(HeaderRole)
		if username == "" || role == "" {
			return Principal{}, false
		}
		return Principal{Name: username, Role: role}, true
	}
}

// TrustedAuth aborts with 401 unless the provider can derive a principal,
// and stores the principal in the gin context otherwise.
func TrustedAuth(provider AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := provider(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Msg: "unauthorized: missing authentication headers",
			})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by TrustedAuth, if any.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}

// RoleRequired rejects requests whose principal satisfies none of the given
// roles: 401 without a principal, 403 otherwise.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Msg: "unauthorized: no authenticated principal",
			})
			return
		}
		for _, role := range roles {
			if principal.IsInRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
			Msg: "forbidden: insufficient role",
		})
	}
}
