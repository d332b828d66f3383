package scheduled_execution

import (
	"context"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type alertGenerator interface {
	GenerateAlertsForOrganization(ctx context.Context, organizationId string) error
}

func NewPredictiveMonitoringPeriodicJob(organizationId string, interval time.Duration) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return models.PredictiveMonitoringArgs{
					OrganizationId: organizationId,
				}, &river.InsertOpts{
					UniqueOpts: river.UniqueOpts{
						ByArgs:   true,
						ByPeriod: interval,
						ByState: []rivertype.JobState{
							rivertype.JobStateAvailable,
							rivertype.JobStatePending, rivertype.JobStateRunning,
							rivertype.JobStateRetryable, rivertype.JobStateScheduled,
						},
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

type PredictiveMonitoringWorker struct {
	river.WorkerDefaults[models.PredictiveMonitoringArgs]

	alertsUsecase alertGenerator
}

func NewPredictiveMonitoringWorker(alertsUsecase alertGenerator) *PredictiveMonitoringWorker {
	return &PredictiveMonitoringWorker{
		alertsUsecase: alertsUsecase,
	}
}

func (w PredictiveMonitoringWorker) Work(ctx context.Context,
	job *river.Job[models.PredictiveMonitoringArgs],
) error {
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "running predictive monitoring",
		"organization_id", job.Args.OrganizationId)

	return w.alertsUsecase.GenerateAlertsForOrganization(ctx, job.Args.OrganizationId)
}
