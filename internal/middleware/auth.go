package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"loja-api/internal/dto"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys for the authenticated principal.
const (
	CtxCustomerID = "customer_id"
	CtxSessionID  = "session_id"
	CtxIsAdmin    = "is_admin"
)

const ClienteCookie = "cliente_token"
const AdminCookie = "auth_token"

// ClienteAuth requires a valid customer session (cookie or Bearer token).
func ClienteAuth(auth *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !attachCliente(c, auth, log) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewUnauthorizedError("sessão inválida ou expirada"))
			return
		}
		c.Next()
	}
}

// ClienteOptional attaches the customer when a valid session is present but
// never rejects the request. Guest checkout relies on this.
func ClienteOptional(auth *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		attachCliente(c, auth, log)
		c.Next()
	}
}

func attachCliente(c *gin.Context, auth *service.AuthService, log *zap.Logger) bool {
	token := clienteToken(c)
	if token == "" {
		return false
	}

	customer, st, err := auth.VerifySession(c.Request.Context(), token)
	if err != nil {
		log.Debug("session verification failed", zap.Error(err))
		return false
	}

	c.Set(CtxCustomerID, customer.ID)
	c.Set(CtxSessionID, st.SessionID)

	ctx := service.WithCustomerID(c.Request.Context(), customer.ID)
	ctx = service.WithSessionID(ctx, st.SessionID)
	c.Request = c.Request.WithContext(ctx)
	return true
}

func clienteToken(c *gin.Context) string {
	if cookie, err := c.Cookie(ClienteCookie); err == nil && cookie != "" {
		return cookie
	}
	if t, ok := ExtractBearerToken(c.GetHeader("Authorization")); ok {
		return t
	}
	return ""
}

// AdminAuth requires the configured admin token, compared in constant time.
func AdminAuth(adminToken string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c, adminToken) {
			log.Warn("admin auth rejected", zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewForbiddenError("acesso restrito"))
			return
		}
		c.Set(CtxIsAdmin, true)
		c.Next()
	}
}

// AdminOptional flags the request as admin when the token matches, without
// rejecting anything.
func AdminOptional(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin(c, adminToken) {
			c.Set(CtxIsAdmin, true)
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context, adminToken string) bool {
	if adminToken == "" {
		return false
	}
	presented := ""
	if cookie, err := c.Cookie(AdminCookie); err == nil && cookie != "" {
		presented = cookie
	} else if t, ok := ExtractBearerToken(c.GetHeader("Authorization")); ok {
		presented = t
	}
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(adminToken)) == 1
}

// ExtractBearerToken pulls the token out of an Authorization header,
// tolerating surrounding quotes and trailing garbage.
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexAny(t, ", "); i >= 0 {
		t = strings.Trim(t[:i], " \"'")
	}
	return t, t != ""
}
