package jobs

import (
	"context"
	"roomboard/internal/logger"
	"roomboard/internal/services"
)

type NotificationCompactor interface {
	Compact(ctx context.Context) (int, error)
}

type NotificationCompactionJob struct {
	notifications NotificationCompactor
	log           logger.Logger
	schedule      services.Schedule
}

func NewNotificationCompactionJob(
	notifications NotificationCompactor,
	schedule services.Schedule,
) *NotificationCompactionJob {
	return &NotificationCompactionJob{
		notifications: notifications,
		log:           logger.New("notificationCompactionJob"),
		schedule:      schedule,
	}
}

func (j *NotificationCompactionJob) Name() string {
	return "NotificationCompaction"
}

func (j *NotificationCompactionJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	removed, err := j.notifications.Compact(ctx)
	if err != nil {
		return log.Err("notification compaction failed", err)
	}

	if removed > 0 {
		log.Info("Notification log compacted", "removed", removed)
	}
	return nil
}

func (j *NotificationCompactionJob) Schedule() services.Schedule {
	return j.schedule
}
