package jobs

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/services"
)

type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context) (HistoryEntry, error)
}

type DailySnapshotJob struct {
	history  SnapshotSaver
	log      logger.Logger
	schedule services.Schedule
}

func NewDailySnapshotJob(history SnapshotSaver, schedule services.Schedule) *DailySnapshotJob {
	log := logger.New("dailySnapshotJob")
	log.Info("Creating new daily snapshot job", "schedule", schedule)

	return &DailySnapshotJob{
		history:  history,
		log:      log,
		schedule: schedule,
	}
}

func (j *DailySnapshotJob) Name() string {
	return "DailyRoomSnapshot"
}

func (j *DailySnapshotJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	entry, err := j.history.SaveSnapshot(ctx)
	if err != nil {
		return log.Err("daily room snapshot failed", err)
	}

	log.Info("Daily room snapshot saved", "date", entry.Date, "rooms", len(entry.Rooms))
	return nil
}

func (j *DailySnapshotJob) Schedule() services.Schedule {
	return j.schedule
}
