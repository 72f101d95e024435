package pipeline

import (
	"fmt"
	"time"

	"cnet-api/core/apierror"
	"cnet-api/core/auth"
	"cnet-api/core/config"
	"cnet-api/core/loader"
	"cnet-api/core/logger"
	"cnet-api/core/metrics"
	"cnet-api/core/middleware/authn"
	"cnet-api/core/middleware/authz"
	"cnet-api/core/middleware/bodybuffer"
	"cnet-api/core/middleware/cors"
	"cnet-api/core/middleware/rayid"
	"cnet-api/core/middleware/static"
	"cnet-api/core/procedure"
	"cnet-api/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Stage names one step of the request pipeline.
type Stage string

const (
	StageBuffering      Stage = "buffering"
	StageRouting        Stage = "routing"
	StageStatic         Stage = "static"
	StageAuthentication Stage = "authentication"
	StageCORS           Stage = "cors"
	StageAuthorization  Stage = "authorization"
	StageDispatch       Stage = "dispatch"
)

// Stages lists the pipeline stages in the order Assemble registers them.
var Stages = []Stage{
	StageBuffering,
	StageRouting,
	StageStatic,
	StageAuthentication,
	StageCORS,
	StageAuthorization,
	StageDispatch,
}

// APIPrefix is the route group that authentication, CORS and authorization
// apply to.
const APIPrefix = "/api"

// Runtime is the process-wide state the pipeline is built from.
// It is created once at startup and never mutated afterwards.
type Runtime struct {
	Config  *config.Config
	Logs    *logger.Registry
	Auth    *auth.Auth
	Cors    cors.Policy
	Metrics *metrics.Metrics
	// Storage serves static assets from a bucket when set.
	Storage storage.Client
}

// NewRuntime compiles the authentication and cross-origin policies from cfg.
// logs, m and store may be nil.
func NewRuntime(cfg *config.Config, logs *logger.Registry, m *metrics.Metrics, store storage.Client) (*Runtime, error) {
	if logs == nil {
		logs = logger.NewNopRegistry()
	}

	a, err := auth.New(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrStartup, err)
	}

	policy := cors.NewPolicy(cfg.Cors)
	if policy.AllowsAnyOrigin() && cfg.Server.IsProduction() {
		logs.MustChannel(logger.ChannelApp).Warn("CORS policy allows any origin in production",
			zap.String("policy", policy.Name))
	}

	return &Runtime{
		Config:  cfg,
		Logs:    logs,
		Auth:    a,
		Cors:    policy,
		Metrics: m,
		Storage: store,
	}, nil
}

// NewApp creates the Fiber application with the runtime's error translation
// and body limit.
func NewApp(rt *Runtime) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "cnet-api",
		DisableStartupMessage: true,
		BodyLimit:             rt.Config.Server.BodyLimit(),
		ErrorHandler:          errorHandler(rt),
	})
}

func errorHandler(rt *Runtime) fiber.ErrorHandler {
	return apierror.Handler(rt.Logs.MustChannel(logger.ChannelError), procedure.Classify)
}

// Assemble registers the pipeline on app and loads the features of mgr into
// the dispatch stage. It returns the names of the loaded features.
func Assemble(app *fiber.App, rt *Runtime, mgr *loader.Manager) ([]string, error) {
	srv := rt.Config.Server

	// Ambient layers, ahead of the first stage.
	app.Use(rayid.New())
	app.Use(accessLog(rt.Logs.MustChannel(logger.ChannelRequest)))
	if rt.Metrics != nil {
		app.Use(rt.Metrics.Middleware())
	}
	app.Use(errorBoundary(errorHandler(rt)))
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: stackTrace(rt.Logs.MustChannel(logger.ChannelError)),
	}))

	// 1. Buffering
	app.Use(bodybuffer.New(bodybuffer.Config{Limit: srv.BodyLimit()}))

	// 2. Routing: public routes first, then the API group.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if rt.Metrics != nil {
		app.Get("/metrics", rt.Metrics.Handler())
	}
	if !srv.IsProduction() {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// 3. Static assets
	static.Register(app, static.Config{
		Prefix:        srv.StaticPrefix,
		Root:          srv.StaticDir,
		Store:         rt.Storage,
		Bucket:        rt.Config.Storage.Bucket,
		MaxAgeSeconds: 3600,
	})

	// 4-6. Authentication, CORS, authorization
	api := app.Group(APIPrefix,
		authn.New(authn.Config{Auth: rt.Auth, Logger: rt.Logs.MustChannel(logger.ChannelApp)}),
		rt.Cors.Handler(),
		authz.New(),
	)

	// 7. Dispatch
	return mgr.LoadAll(api)
}

// errorBoundary renders errors from the rest of the chain immediately, so the
// layers above it observe the final status code.
func errorBoundary(handle fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return handle(c, err)
		}
		return nil
	}
}

func accessLog(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.WithRayID(l, c).Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func stackTrace(l *zap.Logger) func(c *fiber.Ctx, e any) {
	return func(c *fiber.Ctx, e any) {
		logger.WithRayID(l, c).Error("Handler panicked",
			zap.Any("panic", e),
			zap.String("path", c.Path()),
			zap.Stack("stack"),
		)
	}
}
