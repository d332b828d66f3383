package cmd

import (
	"context"

	"github.com/modelproof/modelproof-backend/infra"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/utils"
)

// RunMigrations applies the schema migrations and exits.
func RunMigrations() error {
	pgConfig := infra.PgConfig{
		ConnectionString: utils.GetStringEnv("PG_CONNECTION_STRING", ""),
		Database:         utils.GetStringEnv("PG_DATABASE", "modelproof"),
		Hostname:         utils.GetStringEnv("PG_HOSTNAME", "localhost"),
		Password:         utils.GetStringEnv("PG_PASSWORD", ""),
		Port:             utils.GetStringEnv("PG_PORT", "5432"),
		User:             utils.GetStringEnv("PG_USER", ""),
		SslMode:          utils.GetStringEnv("PG_SSL_MODE", "prefer"),
	}

	logger := utils.NewLogger(utils.GetStringEnv("ENV", "development"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(pgConfig)
	if err := migrater.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "error running migrations", "error", err.Error())
		return err
	}
	return nil
}
