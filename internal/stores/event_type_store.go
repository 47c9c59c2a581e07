package stores

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

type EventTypeStore struct {
	db *gorm.DB
}

func NewEventTypeStore(db *gorm.DB) *EventTypeStore {
	return &EventTypeStore{db: db}
}

func (s *EventTypeStore) FindAll() ([]models.EventType, error) {
	var rows []models.EventType
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return nil, apperr.Database("failed to list event types", err)
	}
	return rows, nil
}

func (s *EventTypeStore) FindByID(id int64) (*models.EventType, error) {
	var row models.EventType
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event type %d not found", id)
		}
		return nil, apperr.Database("failed to find event type", err)
	}
	return &row, nil
}

func (s *EventTypeStore) Create(row *models.EventType) error {
	if err := s.db.Create(row).Error; err != nil {
		return apperr.Database("failed to create event type", err)
	}
	return nil
}

func (s *EventTypeStore) Update(id int64, row *models.EventType) (bool, error) {
	result := s.db.Model(&models.EventType{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":          row.Name,
		"description":   row.Description,
		"map_indicator": row.MapIndicator,
		"category":      row.Category,
	})
	if result.Error != nil {
		return false, apperr.Database("failed to update event type", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *EventTypeStore) Delete(id int64) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.EventType{})
	if result.Error != nil {
		return false, apperr.Database("failed to delete event type", result.Error)
	}
	return result.RowsAffected > 0, nil
}
