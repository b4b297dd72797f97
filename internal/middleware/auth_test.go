package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenApp(t *testing.T) *fiber.App {
	t.Helper()
	config.SecretKey = []byte("secret")

	app := fiber.New()
	app.Get("/protected", UseToken, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func protectedStatus(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestUseTokenRejections(t *testing.T) {
	app := tokenApp(t)

	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, "token-without-scheme"))
	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, "Basic abc123"))
	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, "Bearer not.a.jwt"))

	wrongKey := signToken(t, jwt.MapClaims{
		"id":  "abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, []byte("other-secret"))
	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, "Bearer "+wrongKey))

	expired := signToken(t, jwt.MapClaims{
		"id":  "abc",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, config.SecretKey)
	assert.Equal(t, http.StatusUnauthorized, protectedStatus(t, app, "Bearer "+expired))
}

func TestUseTokenAcceptsValidToken(t *testing.T) {
	app := tokenApp(t)

	token := signToken(t, jwt.MapClaims{
		"id":  "64f000000000000000000001",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, config.SecretKey)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
