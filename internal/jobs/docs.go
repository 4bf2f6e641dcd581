// Package jobs provides scheduled background tasks for the delivery tracker.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled
// and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(summaryHandler, cfg.StatusReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StatusReportJob logs the number of orders per status, hourly by default.
// A failed report is logged and the schedule continues.
package jobs
