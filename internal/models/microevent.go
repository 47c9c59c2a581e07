package models

import "time"

// Microevent is a sub-activity scheduled under a parent event. Archive is a
// soft hide, not a delete.
type Microevent struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID     int64      `gorm:"not null;index" json:"event_id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string     `gorm:"not null" json:"name"`
	Archive     bool       `gorm:"not null;default:false" json:"archive"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
