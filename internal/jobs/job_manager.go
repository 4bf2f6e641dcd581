package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	statusReportJob *StatusReportJob
}

// NewJobManager creates a job manager with every scheduled job.
func NewJobManager(summaryHandler StatusSummaryHandler, statusReportSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		statusReportJob: NewStatusReportJob(summaryHandler, statusReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.statusReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start status report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusReportJob.Stop()
}
