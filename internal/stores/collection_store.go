package stores

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

// CollectionStore persists one UserCollection row per user. Replace is the
// only mutation primitive; there is no field-level update.
type CollectionStore struct {
	db *gorm.DB
}

func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Get returns the user's collection record, creating an empty one on first
// access. The insert uses ON CONFLICT DO NOTHING on the unique user_id
// column, so concurrent first access cannot produce two rows.
func (s *CollectionStore) Get(userID string) (*models.UserCollection, error) {
	empty := models.UserCollection{
		UserID:              userID,
		FavoriteEvents:      models.Int64List{},
		FavoriteMicroevents: models.Int64List{},
		SavedEvents:         models.Int64List{},
		SavedMicroevents:    models.Int64List{},
		CreatedEvents:       models.Int64List{},
		CreatedMicroevents:  models.Int64List{},
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&empty).Error
	if err != nil {
		return nil, apperr.Database("failed to create collection record", err)
	}

	var record models.UserCollection
	if err := s.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, apperr.Database("failed to fetch collection record", err)
	}
	return &record, nil
}

// GetByRecordID looks up by the internal record id. Unlike Get it never
// creates.
func (s *CollectionStore) GetByRecordID(id int64) (*models.UserCollection, error) {
	var record models.UserCollection
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("collection record %d not found", id)
		}
		return nil, apperr.Database("failed to fetch collection record", err)
	}
	return &record, nil
}

// Replace overwrites all six lists for the record's user id. A user with no
// stored row is NotFound; Get is the only path that creates.
func (s *CollectionStore) Replace(record *models.UserCollection) error {
	result := s.db.Model(&models.UserCollection{}).Where("user_id = ?", record.UserID).Updates(map[string]interface{}{
		"favorite_events":      record.FavoriteEvents,
		"favorite_microevents": record.FavoriteMicroevents,
		"saved_events":         record.SavedEvents,
		"saved_microevents":    record.SavedMicroevents,
		"created_events":       record.CreatedEvents,
		"created_microevents":  record.CreatedMicroevents,
	})
	if result.Error != nil {
		return apperr.Database("failed to replace collection record", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no collection record for user %s", record.UserID)
	}
	return nil
}
