package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jackc/pgx/v5"
	"github.com/nidhinbose89/workoutplanner/internal/middleware"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/pkg/utils"
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type AuthHandler struct {
	userRepo        userStore
	sessions        *session.Store
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthHandler(
	userRepo userStore,
	sessions *session.Store,
	jwtSecret string,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userRepo:        userRepo,
		sessions:        sessions,
		jwtSecret:       jwtSecret,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Please input the username and password."})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Please input the username and password."})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create user."})
	}

	user := &models.User{Username: req.Username, PasswordHash: hashed}
	if err := h.userRepo.CreateUser(c.Context(), user); err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "The username already in DB."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create user."})
	}

	return c.JSON(fiber.Map{
		"message":  "User Created Successfully.",
		"username": user.Username,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Bad username or password"})
	}

	// Unknown user and wrong password return the same response so the
	// endpoint cannot be used for username enumeration.
	user, err := h.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Bad username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to lookup user."})
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Bad username or password"})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to establish session."})
	}
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to establish session."})
	}

	userID := strconv.FormatInt(user.ID, 10)
	accessToken, err := utils.GenerateToken(userID, utils.TokenTypeAccess, h.jwtSecret, h.accessTokenTTL, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to generate token."})
	}
	refreshToken, err := utils.GenerateToken(userID, utils.TokenTypeRefresh, h.jwtSecret, h.refreshTokenTTL, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to generate token."})
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully."})
}

// Refresh exchanges a valid refresh token for a new non-fresh access
// token. Tokens are not revoked server side; expiry and the user-exists
// check below are the only invalidation.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid authorization header format"})
	}

	claims, err := utils.ValidateToken(parts[1], utils.TokenTypeRefresh, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid or expired token"})
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid or expired token"})
	}
	if _, err := h.userRepo.GetByID(c.Context(), userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Invalid or expired token"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to lookup user."})
	}

	accessToken, err := utils.GenerateToken(claims.UserID, utils.TokenTypeAccess, h.jwtSecret, h.accessTokenTTL, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to generate token."})
	}
	return c.JSON(fiber.Map{"access_token": accessToken})
}
