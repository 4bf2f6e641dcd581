package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deliverytracker/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatusReportSchedule runs the report at the top of every hour.
const DefaultStatusReportSchedule = "0 0 * * * *"

// StatusReportTimeout bounds one report so a stuck database cannot hold a tick.
const StatusReportTimeout = 30 * time.Second

// StatusSummaryHandler counts orders per status.
type StatusSummaryHandler interface {
	Handle(ctx context.Context, query queries.OrderStatusSummaryQuery) ([]queries.StatusCount, error)
}

// StatusReportJob periodically logs how many orders sit in each status.
type StatusReportJob struct {
	handler  StatusSummaryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusReportJob creates the job. An empty schedule selects DefaultStatusReportSchedule.
// Schedules use the six-field cron format with seconds.
func NewStatusReportJob(handler StatusSummaryHandler, schedule string, logger *slog.Logger) *StatusReportJob {
	if schedule == "" {
		schedule = DefaultStatusReportSchedule
	}
	return &StatusReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_report_job"),
	}
}

// Start registers the report on its schedule and starts the scheduler.
func (j *StatusReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report within StatusReportTimeout.
func (j *StatusReportJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, StatusReportTimeout)
	defer cancel()

	counts, err := j.handler.Handle(ctx, queries.NewOrderStatusSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Status report failed", "error", err)
		return
	}

	var total int64
	attrs := make([]any, 0, 2*len(counts)+2)
	for _, c := range counts {
		total += c.Count
		attrs = append(attrs, c.Status, c.Count)
	}
	attrs = append(attrs, "total", total)

	j.logger.InfoContext(ctx, "Order status report", attrs...)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *StatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status report job stopped")
}
