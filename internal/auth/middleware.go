package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Auditor records administrative actions. It is satisfied by services.AuditService.
type Auditor interface {
	LogAction(ctx context.Context, req models.RequestContext, action string, metadata map[string]any) error
}

// contextKey is the type for values this package stores in a request context.
type contextKey string

const (
	UserClaimsKey = contextKey("userClaims")
	ClientIPKey   = contextKey("clientIP")
)

// ActionBlockedAccess is the audit action written when a caller's IP is rejected.
const ActionBlockedAccess = "blocked_access"

// RequestContextFrom builds the audit request context for r.
func RequestContextFrom(r *http.Request, ip string) models.RequestContext {
	return models.RequestContext{
		IP:        ip,
		UserAgent: r.UserAgent(),
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: middleware.GetReqID(r.Context()),
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminMiddleware protects admin routes. Checks run in a fixed order: IP
// whitelist, bearer presence, token verification. A rejected IP never reaches
// the token checks.
func AdminMiddleware(whitelist *IPWhitelist, tokens *TokenManager, auditor Auditor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. IP whitelist
			ip := whitelist.GetClientIP(r)
			if !whitelist.IsIPAllowed(ip) {
				log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("Blocked admin access from non-whitelisted IP")
				meta := map[string]any{"reason": "IP not whitelisted", "ip": ip}
				if err := auditor.LogAction(r.Context(), RequestContextFrom(r, ip), ActionBlockedAccess, meta); err != nil {
					log.Error().Err(err).Msg("Failed to write blocked access audit entry")
				}
				writeJSONError(w, http.StatusForbidden, "Access denied")
				return
			}

			// 2. Bearer presence
			tokenStr := BearerToken(r)
			if tokenStr == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			// 3. Verification
			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("Rejected admin token")
				writeJSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			ctx = context.WithValue(ctx, ClientIPKey, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the verified claims stored by AdminMiddleware.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// ClientIPFrom returns the client address resolved by AdminMiddleware.
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(ClientIPKey).(string)
	return ip
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
