package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/nidhinbose89/workoutplanner/pkg/utils"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newProtectedApp(t *testing.T, store *session.Store) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", AuthRequired(testSecret, store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func TestAuthRequiredRejectsMissingCredentials(t *testing.T) {
	app := newProtectedApp(t, session.New())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	app := newProtectedApp(t, session.New())

	token, err := utils.GenerateToken("42", utils.TokenTypeAccess, testSecret, time.Minute, true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequiredRejectsRefreshToken(t *testing.T) {
	app := newProtectedApp(t, session.New())

	token, err := utils.GenerateToken("42", utils.TokenTypeRefresh, testSecret, time.Minute, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	app := newProtectedApp(t, session.New())

	token, err := utils.GenerateToken("42", utils.TokenTypeAccess, testSecret, -time.Minute, true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredAcceptsSession(t *testing.T) {
	store := session.New()
	app := fiber.New()
	app.Post("/fake_login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		require.NoError(t, err)
		sess.Set(SessionUserKey, int64(42))
		require.NoError(t, sess.Save())
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/protected", AuthRequired(testSecret, store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})

	loginResp, err := app.Test(httptest.NewRequest(http.MethodPost, "/fake_login", nil))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	cookies := loginResp.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
