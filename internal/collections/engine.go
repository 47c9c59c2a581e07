// Package collections implements the per-user collection engine: favorite
// and save toggles, ownership bookkeeping, bulk sync, and hydration of id
// lists into full entities.
package collections

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

// Set names one of the six id lists on a collection record.
type Set string

const (
	FavoriteEvents      Set = "favorite_events"
	FavoriteMicroevents Set = "favorite_microevents"
	SavedEvents         Set = "saved_events"
	SavedMicroevents    Set = "saved_microevents"
	CreatedEvents       Set = "created_events"
	CreatedMicroevents  Set = "created_microevents"
)

// Store is the persistence contract the engine mutates through. Replace is a
// whole-record overwrite, so every mutation is a fetch-mutate-replace cycle.
type Store interface {
	Get(userID string) (*models.UserCollection, error)
	GetByRecordID(id int64) (*models.UserCollection, error)
	Replace(record *models.UserCollection) error
}

type EventResolver interface {
	FindByIDList(ids []int64) ([]models.Event, error)
}

type MicroeventResolver interface {
	FindByIDList(ids []int64) ([]models.Microevent, error)
}

// SyncRequest is the client-submitted bulk update. The created sets are
// deliberately absent: ownership cannot be forged through sync.
type SyncRequest struct {
	ID                  int64            `json:"id"`
	UserID              string           `json:"user_id"`
	FavoriteEvents      models.Int64List `json:"favorite_events"`
	FavoriteMicroevents models.Int64List `json:"favorite_microevents"`
	SavedEvents         models.Int64List `json:"saved_events"`
	SavedMicroevents    models.Int64List `json:"saved_microevents"`
}

// Engine serializes all mutations of a user's record through a per-user
// lock. Replace overwrites the whole record, so two interleaved
// fetch-mutate-replace cycles on the same user would lose one of the
// writes; holding the user's lock across the cycle rules that out.
type Engine struct {
	store  Store
	events EventResolver
	micro  MicroeventResolver
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(store Store, events EventResolver, micro MicroeventResolver, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		events: events,
		micro:  micro,
		logger: logger.Named("collections"),
		locks:  make(map[string]*sync.Mutex),
	}
}

// LockUser acquires the user's mutation lock and returns the release func.
// Callers composing collection writes with other store writes (create event
// + grant ownership) hold this across the whole sequence. Lock entries are
// never evicted: the map holds one mutex per distinct user id seen since
// startup.
func (e *Engine) LockUser(userID string) func() {
	e.mu.Lock()
	l, ok := e.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[userID] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get returns the user's record, creating an empty one on first access.
func (e *Engine) Get(userID string) (*models.UserCollection, error) {
	return e.store.Get(userID)
}

// Toggle flips membership of id in one of the favorite/saved sets: present
// is removed, absent is appended. Returns the resulting list. Toggling a
// created set is not a thing; ownership moves only through grant/revoke.
func (e *Engine) Toggle(userID string, set Set, id int64) (models.Int64List, error) {
	if set == CreatedEvents || set == CreatedMicroevents {
		return nil, apperr.Validation("cannot toggle ownership set %s", set)
	}

	unlock := e.LockUser(userID)
	defer unlock()

	record, err := e.store.Get(userID)
	if err != nil {
		return nil, err
	}

	list := setRef(record, set)
	if pos := indexOf(*list, id); pos >= 0 {
		*list = append((*list)[:pos], (*list)[pos+1:]...)
	} else {
		*list = append(*list, id)
	}

	if err := e.store.Replace(record); err != nil {
		return nil, err
	}
	return *list, nil
}

// GrantOwnership records id in one of the created sets. An id already
// present is left alone, so a grant is exactly-once. A nil store uses the
// engine's own handle; passing a transaction-scoped store lets event
// creation and the grant commit together. Caller must hold the user's lock
// via LockUser.
func (e *Engine) GrantOwnership(s Store, userID string, set Set, id int64) (models.Int64List, error) {
	if set != CreatedEvents && set != CreatedMicroevents {
		return nil, apperr.Validation("cannot grant ownership on set %s", set)
	}
	if s == nil {
		s = e.store
	}

	record, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	list := setRef(record, set)
	if indexOf(*list, id) < 0 {
		*list = append(*list, id)
		if err := s.Replace(record); err != nil {
			return nil, err
		}
	}
	return *list, nil
}

// RevokeOwnership removes id from one of the created sets; a no-op when the
// id is absent. Same locking contract as GrantOwnership.
func (e *Engine) RevokeOwnership(s Store, userID string, set Set, id int64) (models.Int64List, error) {
	if set != CreatedEvents && set != CreatedMicroevents {
		return nil, apperr.Validation("cannot revoke ownership on set %s", set)
	}
	if s == nil {
		s = e.store
	}

	record, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	list := setRef(record, set)
	if pos := indexOf(*list, id); pos >= 0 {
		*list = append((*list)[:pos], (*list)[pos+1:]...)
		if err := s.Replace(record); err != nil {
			return nil, err
		}
	}
	return *list, nil
}

// Sync bulk-replaces the favorite and saved lists from a client-submitted
// request. The request must address an existing record whose user id
// matches the request's; the stored created sets are preserved no matter
// what the client sent.
func (e *Engine) Sync(req SyncRequest) (*models.UserCollection, error) {
	if req.UserID == "" {
		return nil, apperr.Validation("user_id is required")
	}

	unlock := e.LockUser(req.UserID)
	defer unlock()

	stored, err := e.store.GetByRecordID(req.ID)
	if err != nil {
		return nil, err
	}
	if stored.UserID != req.UserID {
		return nil, apperr.Validation("user ids do not match ownership")
	}

	record := &models.UserCollection{
		ID:                  stored.ID,
		UserID:              stored.UserID,
		FavoriteEvents:      orEmpty(req.FavoriteEvents),
		FavoriteMicroevents: orEmpty(req.FavoriteMicroevents),
		SavedEvents:         orEmpty(req.SavedEvents),
		SavedMicroevents:    orEmpty(req.SavedMicroevents),
		CreatedEvents:       stored.CreatedEvents,
		CreatedMicroevents:  stored.CreatedMicroevents,
	}

	if err := e.store.Replace(record); err != nil {
		return nil, err
	}
	return record, nil
}

// HydrateEvents resolves one of the event id sets into full responses.
// Ids that no longer resolve, and rows whose snapshot fails to decode, are
// dropped; availability wins over strict reporting.
func (e *Engine) HydrateEvents(userID string, set Set) ([]models.EventResponse, error) {
	if set != FavoriteEvents && set != SavedEvents && set != CreatedEvents {
		return nil, apperr.Validation("%s is not an event set", set)
	}

	record, err := e.store.Get(userID)
	if err != nil {
		return nil, err
	}
	ids := *setRef(record, set)

	rows, err := e.events.FindByIDList(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.EventResponse, 0, len(rows))
	for i := range rows {
		resp, err := rows[i].Response()
		if err != nil {
			e.logger.Warn("dropping event with undecodable snapshot",
				zap.Int64("event_id", rows[i].ID))
			continue
		}
		out = append(out, resp)
	}

	if len(out) != len(ids) {
		e.logger.Warn("hydration resolved fewer entities than requested",
			zap.String("user_id", userID),
			zap.String("set", string(set)),
			zap.Int("requested", len(ids)),
			zap.Int("resolved", len(out)))
	}
	return out, nil
}

// HydrateMicroevents resolves one of the microevent id sets, dropping stale
// ids the same way HydrateEvents does.
func (e *Engine) HydrateMicroevents(userID string, set Set) ([]models.Microevent, error) {
	if set != FavoriteMicroevents && set != SavedMicroevents && set != CreatedMicroevents {
		return nil, apperr.Validation("%s is not a microevent set", set)
	}

	record, err := e.store.Get(userID)
	if err != nil {
		return nil, err
	}
	ids := *setRef(record, set)

	rows, err := e.micro.FindByIDList(ids)
	if err != nil {
		return nil, err
	}

	if len(rows) != len(ids) {
		e.logger.Warn("hydration resolved fewer entities than requested",
			zap.String("user_id", userID),
			zap.String("set", string(set)),
			zap.Int("requested", len(ids)),
			zap.Int("resolved", len(rows)))
	}
	return rows, nil
}

func setRef(record *models.UserCollection, set Set) *models.Int64List {
	switch set {
	case FavoriteEvents:
		return &record.FavoriteEvents
	case FavoriteMicroevents:
		return &record.FavoriteMicroevents
	case SavedEvents:
		return &record.SavedEvents
	case SavedMicroevents:
		return &record.SavedMicroevents
	case CreatedEvents:
		return &record.CreatedEvents
	default:
		return &record.CreatedMicroevents
	}
}

func indexOf(list models.Int64List, id int64) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func orEmpty(list models.Int64List) models.Int64List {
	if list == nil {
		return models.Int64List{}
	}
	return list
}
