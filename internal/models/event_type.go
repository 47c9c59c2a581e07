package models

import "time"

// EventType categorizes events: music festival, ren faire, car show, etc.
type EventType struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null;unique" json:"name"`
	Description  string `json:"description"`
	MapIndicator string `json:"map_indicator"`
	Category     string `json:"category"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
