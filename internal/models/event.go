package models

import (
	"encoding/json"
	"time"
)

type Event struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `gorm:"not null" json:"description"`
	Website        *string   `json:"website"`
	EventTypeID    int64     `gorm:"not null;index" json:"event_type_id"`
	EventType      EventType `json:"event_type"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	CampingAllowed bool       `gorm:"not null;default:false" json:"camping_allowed"`
	// EventData holds the full document snapshot. The queryable columns above
	// must always match the corresponding fields inside the snapshot; the
	// store does not enforce this, writers do.
	EventData JSONDocument `gorm:"type:json" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EventResponse is the outbound shape: the decoded document plus the row id
// and the joined event type.
type EventResponse struct {
	ID int64 `json:"id"`
	EventDocument
	EventType EventType `json:"event_type"`
}

// Response decodes the stored document snapshot. A malformed snapshot is a
// mapping failure; list endpoints drop such rows instead of failing the
// whole request.
func (e *Event) Response() (EventResponse, error) {
	var doc EventDocument
	if len(e.EventData) > 0 {
		if err := json.Unmarshal(e.EventData, &doc); err != nil {
			return EventResponse{}, err
		}
	}
	return EventResponse{
		ID:            e.ID,
		EventDocument: doc,
		EventType:     e.EventType,
	}, nil
}
