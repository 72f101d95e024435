package authn

import (
	"net/http/httptest"
	"testing"

	"cnet-api/core/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, err := auth.New(auth.Settings{
		Issuer:    "cnet",
		Audience:  "cnet-api",
		SecretKey: "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)
	token, err := a.GenerateToken(auth.TokenRequest{Subject: "u-9"})
	require.NoError(t, err)

	var (
		gotPrincipal *auth.Principal
		gotFailure   error
	)
	app := fiber.New()
	app.Use(New(Config{Auth: a}))
	app.Get("/", func(c *fiber.Ctx) error {
		gotPrincipal, _ = Principal(c)
		gotFailure = Failure(c)
		return nil
	})

	do := func(header string) {
		gotPrincipal, gotFailure = nil, nil
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	do("")
	assert.Nil(t, gotPrincipal)
	assert.NoError(t, gotFailure)

	do("Bearer " + token)
	require.NotNil(t, gotPrincipal)
	assert.Equal(t, "u-9", gotPrincipal.Subject)
	assert.NoError(t, gotFailure)

	do("Bearer " + token + "x")
	assert.Nil(t, gotPrincipal)
	assert.ErrorIs(t, gotFailure, auth.ErrInvalidToken)

	do("Token " + token)
	assert.Nil(t, gotPrincipal)
	assert.ErrorIs(t, gotFailure, auth.ErrInvalidToken)
}

func TestNew_RequiresAuth(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}
