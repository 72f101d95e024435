package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cnet-api/core/config"
	"cnet-api/core/database"
	"cnet-api/core/loader"
	"cnet-api/core/logger"
	"cnet-api/core/metrics"
	"cnet-api/core/pipeline"
	"cnet-api/core/procedure"
	"cnet-api/core/storage"
	"cnet-api/feature/department"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "cnet-api/docs/swagger"
)

// @title CNet API
// @version 1.0
// @description Multi-tenant business API.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server",
	Long:  `Validates the configuration, assembles the request pipeline and serves HTTP until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load and validate configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		// 2. Initialize log channels
		logs, err := logger.NewRegistry(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize loggers: %v", err)
		}
		defer logs.Sync()
		logg := logs.MustChannel(logger.ChannelApp)
		zap.ReplaceGlobals(logg)
		for _, ch := range logs.Fallbacks() {
			logg.Warn("Log channel has no config file, using base config", zap.String("channel", string(ch)))
		}

		// 3. Connect to Database (Optional)
		registry := procedures()
		db := connectDatabase(cmd.Context(), cfg, registry, logs.MustChannel(logger.ChannelData))
		defer func() { _ = database.Close(db) }()

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if ok, err := store.BucketExists(cmd.Context(), cfg.Storage.Bucket); err != nil || !ok {
				logg.Warn("Static asset bucket is not reachable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
			}
		}

		// 5. Build the runtime
		m := metrics.New()
		exec := procedure.NewExecutor(db, registry, procedure.Config{
			Timeout:  cfg.Database.QueryTimeout(),
			Logger:   logs.MustChannel(logger.ChannelData),
			Observer: m,
		})
		rt, err := pipeline.NewRuntime(cfg, logs, m, store)
		if err != nil {
			logg.Fatal("Failed to configure pipeline", zap.Error(err))
		}

		// 6. Register Features and assemble the pipeline
		mgr := loader.NewManager()
		mgr.Register(department.NewFeature(exec, logg))

		app := pipeline.NewApp(rt)
		loaded, err := pipeline.Assemble(app, rt, mgr)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Pipeline assembled",
			zap.Strings("features", loaded),
			zap.String("environment", cfg.Server.Environment))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
