package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simoncdt/vericoupon/internal/auth"
	"github.com/simoncdt/vericoupon/internal/validator"
)

func setupAuthApp(t *testing.T) (*fiber.App, *auth.Gate) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	gate := auth.NewGate("operator", string(hash), time.Minute)

	app := fiber.New()
	h := NewAuthHandler(gate, validator.New())
	app.Post("/admin/login", h.Login)
	app.Post("/admin/logout", h.Logout)
	app.Get("/protected", SessionRequired(gate), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, gate
}

func login(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	return postJSON(t, app, "/admin/login", body)
}

func TestLogin_Success(t *testing.T) {
	app, gate := setupAuthApp(t)

	resp := login(t, app, `{"username":"operator","password":"correct-horse"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, jsonDecode(resp, &result))
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["expiresAt"])
	assert.True(t, gate.Verify(result["token"]))
}

func TestLogin_GenericRejection(t *testing.T) {
	app, _ := setupAuthApp(t)

	// Wrong password, wrong username, and missing fields all yield the
	// identical generic response.
	bodies := []string{
		`{"username":"operator","password":"wrong"}`,
		`{"username":"root","password":"correct-horse"}`,
		`{"username":"root","password":"wrong"}`,
		`{"username":"operator"}`,
		`{"password":"correct-horse"}`,
		`{}`,
	}

	for _, body := range bodies {
		resp := login(t, app, body)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "body: %s", body)
		assert.Equal(t, "invalid credentials", decodeError(t, resp), "body: %s", body)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	app, gate := setupAuthApp(t)

	resp := login(t, app, `{"username":"operator","password":"correct-horse"}`)
	var result map[string]string
	require.NoError(t, jsonDecode(resp, &result))
	token := result["token"]
	require.True(t, gate.Verify(token))

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	logoutResp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, logoutResp.StatusCode)
	assert.False(t, gate.Verify(token))
}

func TestSessionRequired_AllowsLiveSession(t *testing.T) {
	app, gate := setupAuthApp(t)

	session, err := gate.Login("operator", "correct-horse")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+session.Token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionRequired_RejectsMissingOrBadToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	testCases := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"unknown_token", "Bearer not-a-session"},
		{"malformed_header", "Token abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "authentication required", decodeError(t, resp))
		})
	}
}
