package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/slicehaus/slicehaus-backend/pkg/config"
	"github.com/slicehaus/slicehaus-backend/pkg/db"
	"github.com/slicehaus/slicehaus-backend/pkg/db/models"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

// Run applies the schema for every persisted model.
func Run(ctx context.Context, conn *gorm.DB) error {
	return conn.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderLineItem{},
	)
}

// MaybeRunDev executes migrations automatically when the app is running
// in dev mode and the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "running schema migrations (dev auto-run)")

	if err := Run(ctx, client.DB()); err != nil {
		return fmt.Errorf("running auto-migrate: %w", err)
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}
