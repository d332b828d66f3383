package infra

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

func NewRiverClient(pool *pgxpool.Pool, workers *river.Workers,
	periodicJobs []*river.PeriodicJob,
) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), &river.Config{
		Workers:      workers,
		PeriodicJobs: periodicJobs,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
		},
		// Must be larger than the time it takes to process a job.
		RescueStuckJobsAfter: 5 * time.Minute,
	})
}
