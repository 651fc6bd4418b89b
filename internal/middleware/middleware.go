package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/pkg/jwt"
)

const authContextKey = "auth_context"

// AuthContext is the resolved identity of the caller, produced once by the
// auth middleware and read by handlers through Auth. Handlers never touch the
// token themselves.
type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		AdminMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New()
}

func getTokenFromHeaders(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := getTokenFromHeaders(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageNotLoggedIn, domain.ErrTokenNotFound)
		}

		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			message := domain.MessageTokenInvalid
			if err == domain.ErrTokenExpired {
				message = domain.MessageTokenExpired
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
		}

		id, err := uuid.Parse(userID)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageTokenInvalid, domain.ErrParseUUID)
		}

		c.Locals(authContextKey, AuthContext{UserID: id, Role: role})
		return c.Next()
	}
}

func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, ok := c.Locals(authContextKey).(AuthContext)
		if !ok || auth.Role != entities.RoleAdmin {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageNoAdminRight, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}

// Auth returns the AuthContext resolved by AuthMiddleware. Only valid behind
// it.
func Auth(c *fiber.Ctx) AuthContext {
	auth, _ := c.Locals(authContextKey).(AuthContext)
	return auth
}
