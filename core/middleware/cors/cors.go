package cors

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/multierr"
)

// DefaultPolicyName is the name of the policy applied to the API routes.
const DefaultPolicyName = "default"

// Config holds the cross-origin policy settings.
type Config struct {
	// AllowOrigins is a comma separated origin list, or "*" for any origin.
	AllowOrigins string `mapstructure:"allow_origins" default:"*"`
	// AllowHeaders is a comma separated header list. Empty echoes the
	// headers requested by the preflight, which admits any header.
	AllowHeaders string `mapstructure:"allow_headers" default:""`
	// AllowMethods is a comma separated method list.
	AllowMethods string `mapstructure:"allow_methods" default:"GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS"`
	// MaxAgeSeconds is how long browsers may cache a preflight result.
	MaxAgeSeconds int `mapstructure:"max_age_seconds" default:"600"`
}

// Validate checks that every listed origin is a bare scheme://host[:port].
func (c Config) Validate() error {
	if c.AllowOrigins == "*" || c.AllowOrigins == "" {
		return nil
	}
	var err error
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		o = strings.TrimSpace(o)
		u, perr := url.Parse(o)
		if perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || (u.Path != "" && u.Path != "/") {
			err = multierr.Append(err, fmt.Errorf("invalid cors origin %q", o))
		}
	}
	return err
}

// Policy is a named, immutable cross-origin policy.
type Policy struct {
	Name   string
	config Config
}

// NewPolicy returns the default policy for cfg.
func NewPolicy(cfg Config) Policy {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	if cfg.AllowMethods == "" {
		cfg.AllowMethods = strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodPut,
			fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions,
		}, ",")
	}
	return Policy{Name: DefaultPolicyName, config: cfg}
}

// AllowsAnyOrigin reports whether the policy admits every origin.
// Such a policy suits development; production deployments should list origins.
func (p Policy) AllowsAnyOrigin() bool {
	return p.config.AllowOrigins == "*"
}

// Handler returns the middleware enforcing the policy. It answers preflight
// requests itself and decorates other responses with the CORS headers.
func (p Policy) Handler() fiber.Handler {
	return fibercors.New(fibercors.Config{
		AllowOrigins:  p.config.AllowOrigins,
		AllowHeaders:  p.config.AllowHeaders,
		AllowMethods:  p.config.AllowMethods,
		MaxAge:        p.config.MaxAgeSeconds,
		ExposeHeaders: "X-Ray-ID",
	})
}
