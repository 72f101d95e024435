package authz

import (
	"errors"
	"strings"

	"cnet-api/core/apierror"
	"cnet-api/core/auth"
	"cnet-api/core/middleware/authn"

	"github.com/gofiber/fiber/v2"
)

// New returns a middleware that admits only authenticated requests.
// It must run after the authentication stage.
func New() fiber.Handler {
	return RequireRoles()
}

// RequireRoles returns a middleware that admits authenticated principals
// holding at least one of roles. With no roles any principal is admitted.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := authn.Principal(c)
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
			return apierror.Unauthenticated(reason(authn.Failure(c)))
		}
		if !p.HasAnyRole(roles...) {
			return apierror.Forbidden("requires one of roles: " + strings.Join(roles, ", "))
		}
		return c.Next()
	}
}

func reason(err error) string {
	switch {
	case err == nil, errors.Is(err, auth.ErrMissingToken):
		return "authentication required"
	default:
		return "invalid or expired bearer token"
	}
}
