package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/policy"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/jwt"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

const sessionKey = "session"

// AuthMiddleware validates the bearer token and stores the caller's
// session in the request context. Everything behind it reads the
// session explicitly instead of raw claims.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Build the session for downstream handlers
		c.Locals(sessionKey, domain.Session{
			Username:     claims.Username,
			Role:         domain.Role(claims.Role),
			IsSuperAdmin: claims.Super,
		})

		return c.Next()
	}
}

// SessionFromCtx returns the session stored by AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) (domain.Session, bool) {
	sess, ok := c.Locals(sessionKey).(domain.Session)
	return sess, ok
}

// RequireView gates a route group on view-level navigation rules.
func RequireView(view policy.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !policy.CanNavigate(sess, view) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// AdminOnly allows only admins and the super admin.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !sess.IsSuperAdmin && sess.Role != domain.RoleAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}
