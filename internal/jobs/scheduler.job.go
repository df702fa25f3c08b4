package jobs

import (
	"roomboard/internal/controllers"
	"roomboard/internal/logger"
	"roomboard/internal/services"
)

const (
	Nightly = services.Nightly
	Hourly  = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	controllers controllers.Controllers,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	snapshotJob := NewDailySnapshotJob(controllers.History, Nightly)
	if err := schedulerService.AddJob(snapshotJob); err != nil {
		return log.Err("failed to register daily snapshot job", err)
	}
	log.Info("Registered daily snapshot job", "schedule", "nightly", "at", services.NightlyAt)

	compactionJob := NewNotificationCompactionJob(controllers.Notifications, Hourly)
	if err := schedulerService.AddJob(compactionJob); err != nil {
		return log.Err("failed to register notification compaction job", err)
	}
	log.Info("Registered notification compaction job", "schedule", "hourly")

	return nil
}
