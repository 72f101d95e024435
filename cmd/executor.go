package cmd

import (
	"context"

	"cnet-api/core/config"
	"cnet-api/core/database"
	"cnet-api/core/procedure"
	"cnet-api/feature/department"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// procedures is every stored procedure the registered features call.
func procedures() *procedure.Registry {
	return procedure.MustRegistry(department.Procedures...)
}

// connectDatabase opens the database and checks the procedure declarations
// against it. A failed connection returns a nil DB so callers can decide
// whether it is fatal.
func connectDatabase(ctx context.Context, cfg *config.Config, registry *procedure.Registry, l *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Database connection failed", zap.Error(err))
		return nil
	}
	l.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name))

	if err := registry.Verify(ctx, db); err != nil {
		for _, e := range multierr.Errors(err) {
			l.Warn("Stored procedure declaration does not match database", zap.Error(e))
		}
	}
	return db
}
