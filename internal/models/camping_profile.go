package models

import (
	"encoding/json"
	"time"
)

// CampingProfileDocument is a reusable camping template: a named CampingInfo
// block that can be applied to new events as a starting point.
type CampingProfileDocument struct {
	ProfileName string      `json:"profile_name"`
	Description *string     `json:"description"`
	CampingInfo CampingInfo `json:"camping_info"`
}

// CampingProfile persists the template: queryable name and description
// columns plus the full document snapshot in camping_data.
type CampingProfile struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileName string       `gorm:"not null" json:"profile_name"`
	Description *string      `json:"description"`
	CampingData JSONDocument `gorm:"type:json" json:"-"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

type CampingProfileResponse struct {
	ID int64 `json:"id"`
	CampingProfileDocument
}

// Response decodes the stored snapshot. List endpoints drop rows that fail
// to decode, same as events.
func (p *CampingProfile) Response() (CampingProfileResponse, error) {
	var doc CampingProfileDocument
	if len(p.CampingData) > 0 {
		if err := json.Unmarshal(p.CampingData, &doc); err != nil {
			return CampingProfileResponse{}, err
		}
	}
	return CampingProfileResponse{ID: p.ID, CampingProfileDocument: doc}, nil
}
