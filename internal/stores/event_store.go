package stores

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

// EventStore persists event rows: queryable columns plus the serialized
// document snapshot.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) FindAll() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Preload("EventType").Find(&events).Error; err != nil {
		return nil, apperr.Database("failed to list events", err)
	}
	return events, nil
}

func (s *EventStore) FindByID(id int64) (*models.Event, error) {
	var event models.Event
	if err := s.db.Preload("EventType").Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event %d not found", id)
		}
		return nil, apperr.Database("failed to find event", err)
	}
	return &event, nil
}

// FindByIDList returns only the rows that exist; missing ids are dropped
// silently, so the result may be shorter than the input.
func (s *EventStore) FindByIDList(ids []int64) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	var events []models.Event
	if err := s.db.Preload("EventType").Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, apperr.Database("failed to find events by id list", err)
	}
	return events, nil
}

func (s *EventStore) FindByType(eventTypeID int64) ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Preload("EventType").Where("event_type_id = ?", eventTypeID).Find(&events).Error; err != nil {
		return nil, apperr.Database("failed to find events by type", err)
	}
	return events, nil
}

// FindNearby runs a bounding-box search: +/- radius/69 degrees of latitude
// and +/- radius/(69*cos(lat)) degrees of longitude. A box, not a circle;
// corner points past the true radius may be included.
func (s *EventStore) FindNearby(lat, lon, radiusMiles float64) ([]models.Event, error) {
	if radiusMiles <= 0 || radiusMiles > 500 {
		return nil, apperr.Validation("radius must be between 0 and 500 miles")
	}

	latDelta := radiusMiles / 69.0
	lonDelta := radiusMiles / (69.0 * math.Cos(lat*math.Pi/180))

	var events []models.Event
	err := s.db.Preload("EventType").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("longitude BETWEEN ? AND ?", lon-lonDelta, lon+lonDelta).
		Order("name").
		Find(&events).Error
	if err != nil {
		return nil, apperr.Database("failed to search nearby events", err)
	}
	return events, nil
}

func (s *EventStore) Create(event *models.Event) error {
	if err := s.db.Create(event).Error; err != nil {
		return apperr.Database("failed to create event", err)
	}
	return nil
}

// Update overwrites the row's columns and snapshot. Returns false when no
// row matched the id.
func (s *EventStore) Update(id int64, event *models.Event) (bool, error) {
	result := s.db.Model(&models.Event{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":            event.Name,
		"description":     event.Description,
		"website":         event.Website,
		"event_type_id":   event.EventTypeID,
		"latitude":        event.Latitude,
		"longitude":       event.Longitude,
		"start_date":      event.StartDate,
		"end_date":        event.EndDate,
		"camping_allowed": event.CampingAllowed,
		"event_data":      event.EventData,
	})
	if result.Error != nil {
		return false, apperr.Database("failed to update event", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *EventStore) Delete(id int64) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return false, apperr.Database("failed to delete event", result.Error)
	}
	return result.RowsAffected > 0, nil
}
