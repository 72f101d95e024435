package authz_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cnet-api/core/apierror"
	"cnet-api/core/auth"
	"cnet-api/core/middleware/authn"
	"cnet-api/core/middleware/authz"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *auth.Auth) {
	a, err := auth.New(auth.Settings{
		Issuer:    "cnet",
		Audience:  "cnet-api",
		SecretKey: "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler(zap.NewNop())})
	app.Use(authn.New(authn.Config{Auth: a}))
	app.Get("/open", func(c *fiber.Ctx) error {
		_, ok := authn.Principal(c)
		return c.JSON(fiber.Map{"authenticated": ok})
	})
	app.Get("/me", authz.New(), func(c *fiber.Ctx) error {
		p, _ := authn.Principal(c)
		return c.JSON(p)
	})
	app.Get("/admin", authz.RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, a
}

func get(t *testing.T, app *fiber.App, path, authorization string) (int, apierror.Response) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body apierror.Response
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAuthentication(t *testing.T) {
	app, a := setupApp(t)
	token, err := a.GenerateToken(auth.TokenRequest{Subject: "u-1", Roles: []string{"reader"}})
	require.NoError(t, err)

	t.Run("AnonymousAllowedOnOpenRoute", func(t *testing.T) {
		status, _ := get(t, app, "/open", "")
		assert.Equal(t, 200, status)
	})

	t.Run("InvalidTokenStillReachesOpenRoute", func(t *testing.T) {
		status, _ := get(t, app, "/open", "Bearer garbage")
		assert.Equal(t, 200, status)
	})

	t.Run("MissingToken", func(t *testing.T) {
		status, body := get(t, app, "/me", "")
		assert.Equal(t, 401, status)
		assert.Equal(t, apierror.KindAuthentication, body.Kind)
		assert.Equal(t, "authentication required", body.Message)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		status, body := get(t, app, "/me", "Bearer garbage")
		assert.Equal(t, 401, status)
		assert.Equal(t, "invalid or expired bearer token", body.Message)
	})

	t.Run("ValidToken", func(t *testing.T) {
		status, _ := get(t, app, "/me", "Bearer "+token)
		assert.Equal(t, 200, status)
	})
}

func TestAuthorization(t *testing.T) {
	app, a := setupApp(t)
	reader, err := a.GenerateToken(auth.TokenRequest{Subject: "u-1", Roles: []string{"reader"}})
	require.NoError(t, err)
	admin, err := a.GenerateToken(auth.TokenRequest{Subject: "u-2", Roles: []string{"admin"}})
	require.NoError(t, err)

	status, body := get(t, app, "/admin", "Bearer "+reader)
	assert.Equal(t, 403, status)
	assert.Equal(t, apierror.KindAuthorization, body.Kind)

	status, _ = get(t, app, "/admin", "Bearer "+admin)
	assert.Equal(t, 204, status)

	status, _ = get(t, app, "/admin", "")
	assert.Equal(t, 401, status)
}
