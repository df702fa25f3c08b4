package services

import (
	"roomboard/config"
)

type Service struct {
	Roster    *RosterService
	Ledger    *LedgerService
	Scheduler *SchedulerService
}

func New(config config.Config) Service {
	return Service{
		Roster:    NewRosterService(config.RosterServiceURL, config.RemoteTimeout()),
		Ledger:    NewLedgerService(config.LedgerServiceURL, config.RemoteTimeout()),
		Scheduler: NewSchedulerService(),
	}
}
