package stores

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

// CampingProfileStore persists camping templates.
type CampingProfileStore struct {
	db *gorm.DB
}

func NewCampingProfileStore(db *gorm.DB) *CampingProfileStore {
	return &CampingProfileStore{db: db}
}

func (s *CampingProfileStore) FindAll() ([]models.CampingProfile, error) {
	var rows []models.CampingProfile
	if err := s.db.Order("profile_name").Find(&rows).Error; err != nil {
		return nil, apperr.Database("failed to list camping profiles", err)
	}
	return rows, nil
}

func (s *CampingProfileStore) FindByID(id int64) (*models.CampingProfile, error) {
	var row models.CampingProfile
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("camping profile %d not found", id)
		}
		return nil, apperr.Database("failed to find camping profile", err)
	}
	return &row, nil
}

func (s *CampingProfileStore) Create(row *models.CampingProfile) error {
	if err := s.db.Create(row).Error; err != nil {
		return apperr.Database("failed to create camping profile", err)
	}
	return nil
}

func (s *CampingProfileStore) Update(id int64, row *models.CampingProfile) (bool, error) {
	result := s.db.Model(&models.CampingProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"profile_name": row.ProfileName,
		"description":  row.Description,
		"camping_data": row.CampingData,
	})
	if result.Error != nil {
		return false, apperr.Database("failed to update camping profile", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *CampingProfileStore) Delete(id int64) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.CampingProfile{})
	if result.Error != nil {
		return false, apperr.Database("failed to delete camping profile", result.Error)
	}
	return result.RowsAffected > 0, nil
}
