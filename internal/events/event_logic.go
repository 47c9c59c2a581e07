// Package events holds the mutation logic for events and microevents:
// payload validation, the owner-or-admin gate, and the synchronization of
// the event stores with the caller's collection record.
package events

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/models"
	"github.com/nomadfest/api/internal/stores"
)

type EventLogic struct {
	db          *gorm.DB
	store       *stores.EventStore
	collections *collections.Engine
	logger      *zap.Logger
}

func NewEventLogic(db *gorm.DB, store *stores.EventStore, engine *collections.Engine, logger *zap.Logger) *EventLogic {
	return &EventLogic{
		db:          db,
		store:       store,
		collections: engine,
		logger:      logger.Named("events"),
	}
}

func (l *EventLogic) GetAll() ([]models.EventResponse, error) {
	rows, err := l.store.FindAll()
	if err != nil {
		return nil, err
	}
	return l.toResponses(rows), nil
}

func (l *EventLogic) GetByID(id int64) (models.EventResponse, error) {
	row, err := l.store.FindByID(id)
	if err != nil {
		return models.EventResponse{}, err
	}
	resp, err := row.Response()
	if err != nil {
		return models.EventResponse{}, apperr.Serialization("stored event document is malformed", err)
	}
	return resp, nil
}

func (l *EventLogic) GetByType(eventTypeID int64) ([]models.EventResponse, error) {
	rows, err := l.store.FindByType(eventTypeID)
	if err != nil {
		return nil, err
	}
	return l.toResponses(rows), nil
}

func (l *EventLogic) GetNearby(lat, lon, radiusMiles float64) ([]models.EventResponse, error) {
	rows, err := l.store.FindNearby(lat, lon, radiusMiles)
	if err != nil {
		return nil, err
	}
	return l.toResponses(rows), nil
}

// Create validates the document, persists the row, and grants ownership to
// the caller. Both writes run in one transaction so a failed grant cannot
// leave an ownerless event behind.
func (l *EventLogic) Create(doc models.EventDocument, claims *auth.Claims) (int64, error) {
	if err := validateEventDocument(&doc); err != nil {
		return 0, err
	}

	row, err := rowFromDocument(doc)
	if err != nil {
		return 0, err
	}

	unlock := l.collections.LockUser(claims.UserID())
	defer unlock()

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := stores.NewEventStore(tx).Create(row); err != nil {
			return err
		}
		_, err := l.collections.GrantOwnership(
			stores.NewCollectionStore(tx), claims.UserID(), collections.CreatedEvents, row.ID)
		return err
	})
	if err != nil {
		return 0, err
	}

	l.logger.Info("event created",
		zap.Int64("event_id", row.ID),
		zap.String("user_id", claims.UserID()))
	return row.ID, nil
}

func (l *EventLogic) Update(id int64, doc models.EventDocument, claims *auth.Claims) error {
	if err := validateEventDocument(&doc); err != nil {
		return err
	}
	if err := l.authorize(claims, collections.CreatedEvents, id); err != nil {
		return err
	}

	row, err := rowFromDocument(doc)
	if err != nil {
		return err
	}

	updated, err := l.store.Update(id, row)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("event %d not found", id)
	}
	return nil
}

// Delete removes the row and revokes the caller's ownership in one
// transaction. No row affected means NotFound and nothing to revoke.
func (l *EventLogic) Delete(id int64, claims *auth.Claims) error {
	if err := l.authorize(claims, collections.CreatedEvents, id); err != nil {
		return err
	}

	unlock := l.collections.LockUser(claims.UserID())
	defer unlock()

	err := l.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := stores.NewEventStore(tx).Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("event %d not found", id)
		}
		_, err = l.collections.RevokeOwnership(
			stores.NewCollectionStore(tx), claims.UserID(), collections.CreatedEvents, id)
		return err
	})
	if err == nil {
		l.logger.Info("event deleted",
			zap.Int64("event_id", id),
			zap.String("user_id", claims.UserID()))
	}
	return err
}

// authorize is the owner-or-admin gate: admins bypass ownership, everyone
// else must hold the id in their created set. Absence is Forbidden, which
// is not the same as the row not existing.
func (l *EventLogic) authorize(claims *auth.Claims, set collections.Set, id int64) error {
	if claims.UserRole().AtLeast(auth.RoleAdmin) {
		return nil
	}

	record, err := l.collections.Get(claims.UserID())
	if err != nil {
		return err
	}

	owned := record.CreatedEvents
	if set == collections.CreatedMicroevents {
		owned = record.CreatedMicroevents
	}
	if !owned.Contains(id) {
		return apperr.Forbidden("you do not have permission to modify this content")
	}
	return nil
}

func (l *EventLogic) toResponses(rows []models.Event) []models.EventResponse {
	out := make([]models.EventResponse, 0, len(rows))
	for i := range rows {
		resp, err := rows[i].Response()
		if err != nil {
			l.logger.Warn("dropping event with undecodable snapshot",
				zap.Int64("event_id", rows[i].ID))
			continue
		}
		out = append(out, resp)
	}
	return out
}

// rowFromDocument builds the persisted row. The queryable columns are
// copied out of the document so they always agree with the snapshot.
func rowFromDocument(doc models.EventDocument) (*models.Event, error) {
	snapshot, err := json.Marshal(doc)
	if err != nil {
		return nil, apperr.Serialization("failed to serialize event document", err)
	}

	lat := doc.LocationInfo.Latitude
	lon := doc.LocationInfo.Longitude
	campingAllowed := doc.CampingInfo != nil && doc.CampingInfo.CampingAllowed

	return &models.Event{
		Name:           doc.Name,
		Description:    doc.Description,
		Website:        doc.Website,
		EventTypeID:    doc.EventTypeID,
		Latitude:       &lat,
		Longitude:      &lon,
		StartDate:      doc.DateInfo.StartDate,
		EndDate:        doc.DateInfo.EndDate,
		CampingAllowed: campingAllowed,
		EventData:      models.JSONDocument(snapshot),
	}, nil
}

func validateEventDocument(doc *models.EventDocument) error {
	if strings.TrimSpace(doc.Name) == "" {
		return apperr.Validation("event name cannot be empty")
	}
	if strings.TrimSpace(doc.Description) == "" {
		return apperr.Validation("event description cannot be empty")
	}
	if doc.LocationInfo.Latitude < -90 || doc.LocationInfo.Latitude > 90 {
		return apperr.Validation("invalid latitude")
	}
	if doc.LocationInfo.Longitude < -180 || doc.LocationInfo.Longitude > 180 {
		return apperr.Validation("invalid longitude")
	}
	if doc.DateInfo.StartDate != nil && doc.DateInfo.EndDate != nil &&
		doc.DateInfo.EndDate.Before(*doc.DateInfo.StartDate) {
		return apperr.Validation("end date cannot be before start date")
	}
	return nil
}
