package events

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/models"
	"github.com/nomadfest/api/internal/stores"
)

type MicroeventLogic struct {
	db          *gorm.DB
	store       *stores.MicroeventStore
	collections *collections.Engine
	logger      *zap.Logger
}

func NewMicroeventLogic(db *gorm.DB, store *stores.MicroeventStore, engine *collections.Engine, logger *zap.Logger) *MicroeventLogic {
	return &MicroeventLogic{
		db:          db,
		store:       store,
		collections: engine,
		logger:      logger.Named("microevents"),
	}
}

func (l *MicroeventLogic) GetAll() ([]models.Microevent, error) {
	return l.store.FindAll()
}

func (l *MicroeventLogic) GetByID(id int64) (*models.Microevent, error) {
	return l.store.FindByID(id)
}

func (l *MicroeventLogic) GetByEvent(eventID int64) ([]models.Microevent, error) {
	return l.store.FindByEvent(eventID)
}

// Create persists the microevent under the caller's id and grants ownership
// in the same transaction.
func (l *MicroeventLogic) Create(row models.Microevent, claims *auth.Claims) (int64, error) {
	if err := validateMicroevent(&row); err != nil {
		return 0, err
	}
	row.ID = 0
	row.UserID = claims.UserID()

	unlock := l.collections.LockUser(claims.UserID())
	defer unlock()

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := stores.NewMicroeventStore(tx).Create(&row); err != nil {
			return err
		}
		_, err := l.collections.GrantOwnership(
			stores.NewCollectionStore(tx), claims.UserID(), collections.CreatedMicroevents, row.ID)
		return err
	})
	if err != nil {
		return 0, err
	}

	l.logger.Info("microevent created",
		zap.Int64("microevent_id", row.ID),
		zap.Int64("event_id", row.EventID),
		zap.String("user_id", claims.UserID()))
	return row.ID, nil
}

func (l *MicroeventLogic) Update(id int64, row models.Microevent, claims *auth.Claims) error {
	if err := validateMicroevent(&row); err != nil {
		return err
	}
	if err := l.authorize(claims, id); err != nil {
		return err
	}

	updated, err := l.store.Update(id, &row)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("microevent %d not found", id)
	}
	return nil
}

func (l *MicroeventLogic) Delete(id int64, claims *auth.Claims) error {
	if err := l.authorize(claims, id); err != nil {
		return err
	}

	unlock := l.collections.LockUser(claims.UserID())
	defer unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := stores.NewMicroeventStore(tx).Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("microevent %d not found", id)
		}
		_, err = l.collections.RevokeOwnership(
			stores.NewCollectionStore(tx), claims.UserID(), collections.CreatedMicroevents, id)
		return err
	})
}

func (l *MicroeventLogic) authorize(claims *auth.Claims, id int64) error {
	if claims.UserRole().AtLeast(auth.RoleAdmin) {
		return nil
	}

	record, err := l.collections.Get(claims.UserID())
	if err != nil {
		return err
	}
	if !record.CreatedMicroevents.Contains(id) {
		return apperr.Forbidden("you do not have permission to modify this content")
	}
	return nil
}

func validateMicroevent(row *models.Microevent) error {
	if strings.TrimSpace(row.Name) == "" {
		return apperr.Validation("microevent name cannot be empty")
	}
	if row.EventID == 0 {
		return apperr.Validation("event_id is required")
	}
	if row.StartTime != nil && row.EndTime != nil && row.EndTime.Before(*row.StartTime) {
		return apperr.Validation("end time cannot be before start time")
	}
	return nil
}
