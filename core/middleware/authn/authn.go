package authn

import (
	"cnet-api/core/auth"
	"cnet-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	failureKey   = "auth_failure"
)

// Config configures the authentication middleware.
type Config struct {
	// Auth is the compiled token validation policy. Required.
	Auth *auth.Auth
	// Logger receives rejected token details at debug level.
	Logger *zap.Logger
}

// New returns a middleware that authenticates the bearer token, if any.
//
// It never rejects a request itself: a valid token attaches a Principal, an
// invalid one records why it failed. Rejection is the authorization stage's
// job, so routes that allow anonymous access keep working.
func New(cfg Config) fiber.Handler {
	if cfg.Auth == nil {
		panic("authn: Auth is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		token, err := auth.ExtractBearer(header)
		if err == nil {
			var p *auth.Principal
			if p, err = cfg.Auth.ValidateToken(token); err == nil {
				c.Locals(principalKey, p)
				return c.Next()
			}
		}

		c.Locals(failureKey, err)
		logger.WithRayID(cfg.Logger, c).Debug("Bearer token rejected", zap.Error(err))
		return c.Next()
	}
}

// Principal returns the authenticated principal of the request.
func Principal(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// Failure returns why the presented token was rejected, or nil.
func Failure(c *fiber.Ctx) error {
	err, _ := c.Locals(failureKey).(error)
	return err
}
