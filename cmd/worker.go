package cmd

import (
	"context"
	"encoding/hex"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"

	"github.com/modelproof/modelproof-backend/infra"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/usecases"
	"github.com/modelproof/modelproof-backend/usecases/scheduled_execution"
	"github.com/modelproof/modelproof-backend/utils"
)

// RunWorker starts the background job worker: one periodic predictive
// monitoring job per organization, running until the process is signalled.
func RunWorker() error {
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetStringEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetStringEnv("PG_DATABASE", "modelproof"),
		Hostname:           utils.GetStringEnv("PG_HOSTNAME", "localhost"),
		Password:           utils.GetStringEnv("PG_PASSWORD", ""),
		Port:               utils.GetStringEnv("PG_PORT", "5432"),
		User:               utils.GetStringEnv("PG_USER", ""),
		SslMode:            utils.GetStringEnv("PG_SSL_MODE", "prefer"),
		MaxPoolConnections: utils.GetIntEnv("PG_MAX_POOL_SIZE", infra.MAX_CONNECTIONS),
	}
	monitoringConfig := infra.MonitoringConfig{
		ForecastInterval: time.Duration(
			utils.GetIntEnv("FORECAST_INTERVAL_MINUTES", 60)) * time.Minute,
		ForecastLookbackDays: utils.GetIntEnv("FORECAST_LOOKBACK_DAYS", 14),
		RegulationCacheTTL: time.Duration(
			utils.GetIntEnv("REGULATION_CACHE_TTL_MINUTES", 10)) * time.Minute,
		AlertDedupWindow: time.Duration(
			utils.GetIntEnv("ALERT_DEDUP_WINDOW_MINUTES", 60)) * time.Minute,
	}
	env := utils.GetStringEnv("ENV", "development")

	logger := utils.NewLogger(env)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	encryptionKey, err := hex.DecodeString(utils.GetRequiredStringEnv("DESCRIPTION_ENCRYPTION_KEY"))
	if err != nil {
		return errors.Wrap(err, "DESCRIPTION_ENCRYPTION_KEY is not valid hex")
	}
	crypter, err := infra.NewAESEncryptionService(infra.EncryptionConfig{Key: encryptionKey})
	if err != nil {
		return err
	}

	if utils.GetBoolEnv("PG_RUN_MIGRATIONS", false) {
		if err := repositories.NewMigrater(pgConfig).Run(ctx); err != nil {
			return err
		}
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := usecases.NewUsecases(pool, crypter, monitoringConfig)
	alertsUsecase := uc.NewAlertsUsecase()

	organizationIds, err := uc.ListOrganizationIds(ctx)
	if err != nil {
		return err
	}

	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers,
		scheduled_execution.NewPredictiveMonitoringWorker(alertsUsecase)); err != nil {
		return err
	}

	periodicJobs := make([]*river.PeriodicJob, 0, len(organizationIds))
	for _, organizationId := range organizationIds {
		periodicJobs = append(periodicJobs,
			scheduled_execution.NewPredictiveMonitoringPeriodicJob(
				organizationId, monitoringConfig.ForecastInterval))
	}

	riverClient, err := infra.NewRiverClient(pool, workers, periodicJobs)
	if err != nil {
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "worker started",
		"organizations", len(organizationIds),
		"forecast_interval", monitoringConfig.ForecastInterval.String())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := riverClient.Stop(shutdownCtx); err != nil {
		return errors.Wrap(err, "worker did not stop cleanly")
	}
	logger.Info("worker stopped")
	return nil
}
