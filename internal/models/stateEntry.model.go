package models

import (
	"time"

	"gorm.io/datatypes"
)

// StateEntry is one key of the persisted board state when it lives in SQL.
type StateEntry struct {
	Key       string         `gorm:"type:text;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"not null"             json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"       json:"updatedAt"`
}

func (StateEntry) TableName() string {
	return "state_entries"
}
