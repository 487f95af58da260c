package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meetmind-team/meetmind/pkg/session"
)

const (
	// SessionContextKey is the echo context key for the verified claims
	SessionContextKey = "session"
	// SubjectContextKey is the echo context key for the provider subject
	SubjectContextKey = "subject"
)

// EchoSession returns an Echo middleware that verifies the provider-issued
// session token and sets "session" (*session.Claims) and "subject" (string)
// into the Echo context. Requests without a valid token get 401.
func EchoSession(verifier *session.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session token")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session token")
			}

			c.Set(SessionContextKey, claims)
			c.Set(SubjectContextKey, claims.Subject)
			return next(c)
		}
	}
}

// extractToken reads the token from the Authorization header or, as a
// fallback, the access_token cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

// ClaimsFromContext retrieves the verified session claims from the context
func ClaimsFromContext(c echo.Context) (*session.Claims, bool) {
	claims, ok := c.Get(SessionContextKey).(*session.Claims)
	return claims, ok
}
