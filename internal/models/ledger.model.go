package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is a cleaning-compensation entry held by the external ledger service.
type LedgerRecord struct {
	ID              string          `json:"id"`
	RoomNumber      string          `json:"roomNumber"`
	HousekeeperName string          `json:"housekeeperName"`
	Payment         decimal.Decimal `json:"payment"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	CleanedAt       *time.Time      `json:"cleanedAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
}

type CleaningRecordRequest struct {
	RoomNumber      string          `json:"roomNumber"`
	HousekeeperName string          `json:"housekeeperName"`
	Payment         decimal.Decimal `json:"payment"`
}

type HousekeeperPayout struct {
	HousekeeperName string          `json:"housekeeperName"`
	Cleanings       int             `json:"cleanings"`
	Paid            decimal.Decimal `json:"paid"`
	Unpaid          decimal.Decimal `json:"unpaid"`
}
