package models

import "time"

// HistoryDateLayout is the calendar-day key snapshots are stored under.
const HistoryDateLayout = "2006-01-02"

type HistoryEntry struct {
	Date    string    `json:"date"`
	Rooms   []Room    `json:"rooms"`
	SavedAt time.Time `json:"savedAt"`
}

func (h HistoryEntry) Clone() HistoryEntry {
	h.Rooms = CloneRooms(h.Rooms)
	return h
}
