package pipeline_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cnet-api/core/apierror"
	"cnet-api/core/auth"
	"cnet-api/core/config"
	"cnet-api/core/loader"
	"cnet-api/core/metrics"
	"cnet-api/core/middleware/authn"
	"cnet-api/core/middleware/bodybuffer"
	"cnet-api/core/pipeline"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type probeFeature struct{}

func (probeFeature) Name() string    { return "probe" }
func (probeFeature) IsEnabled() bool { return true }
func (probeFeature) Load(r fiber.Router) error {
	r.Get("/whoami", func(c *fiber.Ctx) error {
		p, _ := authn.Principal(c)
		return c.JSON(fiber.Map{"subject": p.Subject})
	})
	r.Post("/echo", func(c *fiber.Ctx) error {
		first, err := io.ReadAll(bodybuffer.Reader(c))
		if err != nil {
			return err
		}
		second, err := io.ReadAll(bodybuffer.Reader(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"first": string(first), "second": string(second), "body": string(c.Body())})
	})
	r.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	r.Get("/fail", func(c *fiber.Ctx) error {
		return errors.New("dsn=root:secret@tcp(db)")
	})
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Auth.SecretKey = testSecret
	cfg.Server.StaticDir = t.TempDir()
	return cfg
}

func setup(t *testing.T, cfg *config.Config) (*fiber.App, *pipeline.Runtime) {
	t.Helper()
	rt, err := pipeline.NewRuntime(cfg, nil, metrics.New(), nil)
	require.NoError(t, err)

	app := pipeline.NewApp(rt)
	mgr := loader.NewManager()
	mgr.Register(probeFeature{})
	loaded, err := pipeline.Assemble(app, rt, mgr)
	require.NoError(t, err)
	require.Equal(t, []string{"probe"}, loaded)
	return app, rt
}

func bearer(t *testing.T, rt *pipeline.Runtime) string {
	t.Helper()
	token, err := rt.Auth.GenerateToken(auth.TokenRequest{Subject: "u-1", Tenant: "t-1"})
	require.NoError(t, err)
	return "Bearer " + token
}

func signed(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func errorBody(t *testing.T, resp *http.Response) apierror.Response {
	t.Helper()
	var body apierror.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestStages_Order(t *testing.T) {
	assert.Equal(t, []pipeline.Stage{
		pipeline.StageBuffering,
		pipeline.StageRouting,
		pipeline.StageStatic,
		pipeline.StageAuthentication,
		pipeline.StageCORS,
		pipeline.StageAuthorization,
		pipeline.StageDispatch,
	}, pipeline.Stages)
}

func TestNewRuntime_RejectsWeakSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.SecretKey = "short"

	_, err := pipeline.NewRuntime(cfg, nil, nil, nil)
	assert.ErrorIs(t, err, config.ErrStartup)
	assert.ErrorIs(t, err, auth.ErrInvalidSettings)
}

func TestAuthentication_TokenMatrix(t *testing.T) {
	app, rt := setup(t, testConfig(t))
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Subject:   "u-2",
		Issuer:    "cnet",
		Audience:  jwt.ClaimStrings{"cnet-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"
	wrongAudience := valid
	wrongAudience.Audience = jwt.ClaimStrings{"other-api"}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"minted token", bearer(t, rt), http.StatusOK},
		{"valid claims", signed(t, valid, testSecret), http.StatusOK},
		{"wrong signature", signed(t, valid, strings.Repeat("x", 32)), http.StatusUnauthorized},
		{"expired", signed(t, expired, testSecret), http.StatusUnauthorized},
		{"wrong issuer", signed(t, wrongIssuer, testSecret), http.StatusUnauthorized},
		{"wrong audience", signed(t, wrongAudience, testSecret), http.StatusUnauthorized},
		{"not bearer", "Basic dTpw", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
				assert.Equal(t, apierror.KindAuthentication, errorBody(t, resp).Kind)
			}
		})
	}
}

func TestCORS_PreflightOnlyOnAPI(t *testing.T) {
	app, _ := setup(t, testConfig(t))

	preflight := func(target string) *http.Response {
		req := httptest.NewRequest("OPTIONS", target, nil)
		req.Header.Set("Origin", "https://client.example.com")
		req.Header.Set("Access-Control-Request-Method", "GET")
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := preflight("/api/whoami")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "GET")

	resp = preflight("/health")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://client.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_HeadersOnRejectedAPIRequest(t *testing.T) {
	app, _ := setup(t, testConfig(t))

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Origin", "https://client.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestBuffering_BodyIsReReadable(t *testing.T) {
	app, rt := setup(t, testConfig(t))

	req := httptest.NewRequest("POST", "/api/echo", strings.NewReader(`{"deptCode":"D000001"}`))
	req.Header.Set("Authorization", bearer(t, rt))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, `{"deptCode":"D000001"}`, got["first"])
	assert.Equal(t, got["first"], got["second"])
	assert.Equal(t, got["first"], got["body"])
}

func TestErrors_StructuredResponses(t *testing.T) {
	app, rt := setup(t, testConfig(t))

	for _, target := range []string{"/api/panic", "/api/fail"} {
		req := httptest.NewRequest("GET", target, nil)
		req.Header.Set("Authorization", bearer(t, rt))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, target)

		body := errorBody(t, resp)
		assert.Equal(t, apierror.KindInternal, body.Kind)
		assert.Equal(t, "internal server error", body.Message)
		assert.NotEmpty(t, body.RayID)
		assert.Equal(t, body.RayID, resp.Header.Get("X-Ray-ID"))
	}

	req := httptest.NewRequest("GET", "/api/missing", nil)
	req.Header.Set("Authorization", bearer(t, rt))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apierror.KindNotFound, errorBody(t, resp).Kind)
}

func TestSwagger_HiddenInProduction(t *testing.T) {
	dev, _ := setup(t, testConfig(t))
	resp, err := dev.Test(httptest.NewRequest("GET", "/swagger/index.html", nil))
	require.NoError(t, err)
	assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)

	cfg := testConfig(t)
	cfg.Server.Environment = "production"
	prod, _ := setup(t, cfg)
	resp, err = prod.Test(httptest.NewRequest("GET", "/swagger/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatic_ServedWithoutToken(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "hello.txt"), []byte("hi"), 0o600))
	app, _ := setup(t, cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/static/hello.txt", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hi", string(body))
}

func TestMetrics_RecordsFinalStatus(t *testing.T) {
	app, _ := setup(t, testConfig(t))

	_, err := app.Test(httptest.NewRequest("GET", "/api/whoami", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `status="401"`)
}
