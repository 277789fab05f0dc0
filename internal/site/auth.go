package site

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Auth gates the admin endpoints with a shared token. The token is passed
// either as X-Admin-Token or as a bearer token; a bcrypt hash of it can be
// configured instead of the plain value.
type Auth struct {
	adminToken       string
	adminTokenBcrypt string
}

func NewAuth(cfg SecurityConfig) *Auth {
	return &Auth{
		adminToken:       strings.TrimSpace(cfg.AdminToken),
		adminTokenBcrypt: strings.TrimSpace(cfg.AdminTokenBcrypt),
	}
}

// RequireAdmin rejects the request unless it carries the configured admin
// token. With no token configured, admin endpoints are disabled outright.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorize(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) authorize(r *http.Request) bool {
	if a == nil || (a.adminToken == "" && a.adminTokenBcrypt == "") {
		return false
	}
	token := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
	if token == "" {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			token = strings.TrimSpace(authHeader[7:])
		}
	}
	if token == "" {
		return false
	}
	if a.adminTokenBcrypt != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.adminTokenBcrypt), []byte(token)) == nil
	}
	return subtleConstantCompare(token, a.adminToken)
}

func subtleConstantCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
