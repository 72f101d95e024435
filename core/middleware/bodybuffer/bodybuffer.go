package bodybuffer

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "buffered_body"

// Config configures the buffering middleware.
type Config struct {
	// Limit is the largest body buffered, in bytes. Zero means no limit
	// beyond the server's own BodyLimit.
	Limit int
}

// New returns a middleware that reads the whole request body once, before
// routing, and keeps it so later stages can read it again.
//
// When the server streams request bodies the first read would otherwise drain
// the stream and every later read would see zero bytes.
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		// Body drains a streamed body into the request buffer.
		body := c.Request().Body()
		if cfg.Limit > 0 && len(body) > cfg.Limit {
			return fiber.ErrRequestEntityTooLarge
		}

		buffered := make([]byte, len(body))
		copy(buffered, body)
		c.Request().SetBodyRaw(buffered)
		c.Locals(localsKey, buffered)
		return c.Next()
	}
}

// Bytes returns the buffered body. It falls back to the live request body
// when the middleware did not run.
func Bytes(c *fiber.Ctx) []byte {
	if b, ok := c.Locals(localsKey).([]byte); ok {
		return b
	}
	return c.Body()
}

// Reader returns a fresh reader positioned at the start of the body.
// Every call is independent of reads made through earlier readers.
func Reader(c *fiber.Ctx) io.Reader {
	return bytes.NewReader(Bytes(c))
}

// Buffered reports whether the middleware ran for this request.
func Buffered(c *fiber.Ctx) bool {
	_, ok := c.Locals(localsKey).([]byte)
	return ok
}
