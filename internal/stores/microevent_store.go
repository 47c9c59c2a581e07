package stores

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

type MicroeventStore struct {
	db *gorm.DB
}

func NewMicroeventStore(db *gorm.DB) *MicroeventStore {
	return &MicroeventStore{db: db}
}

func (s *MicroeventStore) FindAll() ([]models.Microevent, error) {
	var rows []models.Microevent
	if err := s.db.Order("start_time").Find(&rows).Error; err != nil {
		return nil, apperr.Database("failed to list microevents", err)
	}
	return rows, nil
}

func (s *MicroeventStore) FindByID(id int64) (*models.Microevent, error) {
	var row models.Microevent
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("microevent %d not found", id)
		}
		return nil, apperr.Database("failed to find microevent", err)
	}
	return &row, nil
}

// FindByIDList drops missing ids silently; the result may be shorter than
// the input.
func (s *MicroeventStore) FindByIDList(ids []int64) ([]models.Microevent, error) {
	if len(ids) == 0 {
		return []models.Microevent{}, nil
	}
	var rows []models.Microevent
	if err := s.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Database("failed to find microevents by id list", err)
	}
	return rows, nil
}

func (s *MicroeventStore) FindByEvent(eventID int64) ([]models.Microevent, error) {
	var rows []models.Microevent
	if err := s.db.Where("event_id = ?", eventID).Order("start_time").Find(&rows).Error; err != nil {
		return nil, apperr.Database("failed to find microevents by event", err)
	}
	return rows, nil
}

func (s *MicroeventStore) Create(row *models.Microevent) error {
	if err := s.db.Create(row).Error; err != nil {
		return apperr.Database("failed to create microevent", err)
	}
	return nil
}

func (s *MicroeventStore) Update(id int64, row *models.Microevent) (bool, error) {
	result := s.db.Model(&models.Microevent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"event_id":    row.EventID,
		"name":        row.Name,
		"archive":     row.Archive,
		"description": row.Description,
		"start_time":  row.StartTime,
		"end_time":    row.EndTime,
	})
	if result.Error != nil {
		return false, apperr.Database("failed to update microevent", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *MicroeventStore) Delete(id int64) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.Microevent{})
	if result.Error != nil {
		return false, apperr.Database("failed to delete microevent", result.Error)
	}
	return result.RowsAffected > 0, nil
}
