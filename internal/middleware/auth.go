package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/nidhinbose89/workoutplanner/pkg/utils"
)

// SessionUserKey is the session entry holding the logged-in user id.
const SessionUserKey = "user_id"

// AuthRequired accepts either a server-side session established by login
// or a Bearer access token. On success it stores the user id in
// c.Locals("user_id") as a decimal string.
func AuthRequired(secret string, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			sess, err := store.Get(c)
			if err == nil {
				if userID, ok := sess.Get(SessionUserKey).(int64); ok {
					c.Locals("user_id", strconv.FormatInt(userID, 10))
					return c.Next()
				}
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please login to continue",
				"next":    c.Path(),
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(parts[1], utils.TokenTypeAccess, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}
