package rayid

import (
	"cnet-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the ray id.
const Header = "X-Ray-ID"

// maxInboundLength bounds ray ids accepted from clients.
const maxInboundLength = 64

// New returns a middleware that assigns every request a ray id.
// A client supplied X-Ray-ID is kept when it is short enough; otherwise a UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" || len(rid) > maxInboundLength {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}

// Get returns the ray id of the request, or "" outside the middleware.
func Get(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
