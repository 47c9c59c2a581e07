package collections

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/models"
)

// fakeStore mimics the persistence contract: reads hand out snapshots and
// Replace overwrites the whole record, so interleaved cycles lose writes
// exactly like the real store would.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	byUser   map[string]*models.UserCollection
	replaces int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, byUser: make(map[string]*models.UserCollection)}
}

func copyRecord(r *models.UserCollection) *models.UserCollection {
	out := &models.UserCollection{ID: r.ID, UserID: r.UserID}
	out.FavoriteEvents = append(models.Int64List{}, r.FavoriteEvents...)
	out.FavoriteMicroevents = append(models.Int64List{}, r.FavoriteMicroevents...)
	out.SavedEvents = append(models.Int64List{}, r.SavedEvents...)
	out.SavedMicroevents = append(models.Int64List{}, r.SavedMicroevents...)
	out.CreatedEvents = append(models.Int64List{}, r.CreatedEvents...)
	out.CreatedMicroevents = append(models.Int64List{}, r.CreatedMicroevents...)
	return out
}

func (s *fakeStore) Get(userID string) (*models.UserCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byUser[userID]
	if !ok {
		record = &models.UserCollection{ID: s.nextID, UserID: userID}
		s.nextID++
		s.byUser[userID] = record
	}
	return copyRecord(record), nil
}

func (s *fakeStore) GetByRecordID(id int64) (*models.UserCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.byUser {
		if record.ID == id {
			return copyRecord(record), nil
		}
	}
	return nil, apperr.NotFound("collection record %d not found", id)
}

func (s *fakeStore) Replace(record *models.UserCollection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byUser[record.UserID]
	if !ok {
		return apperr.NotFound("no record for user %s", record.UserID)
	}
	saved := copyRecord(record)
	saved.ID = stored.ID
	s.byUser[record.UserID] = saved
	s.replaces++
	return nil
}

type fakeEvents struct {
	rows map[int64]models.Event
}

func (f *fakeEvents) FindByIDList(ids []int64) ([]models.Event, error) {
	var out []models.Event
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeMicroevents struct {
	rows map[int64]models.Microevent
}

func (f *fakeMicroevents) FindByIDList(ids []int64) ([]models.Microevent, error) {
	var out []models.Microevent
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func newTestEngine(store *fakeStore, events *fakeEvents, micro *fakeMicroevents) *Engine {
	if events == nil {
		events = &fakeEvents{rows: map[int64]models.Event{}}
	}
	if micro == nil {
		micro = &fakeMicroevents{rows: map[int64]models.Microevent{}}
	}
	return NewEngine(store, events, micro, zap.NewNop())
}

func TestToggleAddsThenRemoves(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	list, err := engine.Toggle("alice", FavoriteEvents, 42)
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{42}, list)

	list, err = engine.Toggle("alice", FavoriteEvents, 42)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTogglePairRestoresOriginalState(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	_, err := engine.Toggle("alice", SavedEvents, 1)
	require.NoError(t, err)
	_, err = engine.Toggle("alice", SavedEvents, 2)
	require.NoError(t, err)

	before, err := engine.Get("alice")
	require.NoError(t, err)

	_, err = engine.Toggle("alice", SavedEvents, 99)
	require.NoError(t, err)
	_, err = engine.Toggle("alice", SavedEvents, 99)
	require.NoError(t, err)

	after, err := engine.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, before.SavedEvents, after.SavedEvents)
}

func TestToggleSingleAddsExactlyOneOccurrence(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	list, err := engine.Toggle("alice", FavoriteMicroevents, 7)
	require.NoError(t, err)

	count := 0
	for _, id := range list {
		if id == 7 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestToggleRejectsOwnershipSets(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	_, err := engine.Toggle("alice", CreatedEvents, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = engine.Toggle("alice", CreatedMicroevents, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGrantOwnershipExactlyOnce(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	unlock := engine.LockUser("alice")
	list, err := engine.GrantOwnership(nil, "alice", CreatedEvents, 10)
	unlock()
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{10}, list)

	// A second grant for the same id must not accumulate a duplicate.
	unlock = engine.LockUser("alice")
	list, err = engine.GrantOwnership(nil, "alice", CreatedEvents, 10)
	unlock()
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{10}, list)
}

func TestRevokeOwnershipNoOpWhenAbsent(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, nil, nil)

	unlock := engine.LockUser("alice")
	list, err := engine.RevokeOwnership(nil, "alice", CreatedEvents, 99)
	unlock()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGrantRevokeLifecycleLeavesSetEmpty(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	grant := func(id int64) {
		unlock := engine.LockUser("alice")
		defer unlock()
		_, err := engine.GrantOwnership(nil, "alice", CreatedEvents, id)
		require.NoError(t, err)
	}
	revoke := func(id int64) {
		unlock := engine.LockUser("alice")
		defer unlock()
		_, err := engine.RevokeOwnership(nil, "alice", CreatedEvents, id)
		require.NoError(t, err)
	}

	grant(5)
	revoke(5)
	grant(5)
	revoke(5)

	record, err := engine.Get("alice")
	require.NoError(t, err)
	assert.Empty(t, record.CreatedEvents)
}

func TestGrantRejectsNonOwnershipSets(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	unlock := engine.LockUser("alice")
	defer unlock()
	_, err := engine.GrantOwnership(nil, "alice", FavoriteEvents, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSyncCannotForgeOwnership(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	unlock := engine.LockUser("alice")
	_, err := engine.GrantOwnership(nil, "alice", CreatedEvents, 100)
	unlock()
	require.NoError(t, err)

	record, err := engine.Get("alice")
	require.NoError(t, err)

	// A malicious client may include created_events in the body; the
	// request type has no such field, so it is dropped at decode time.
	body := []byte(`{
		"id": ` + jsonInt(record.ID) + `,
		"user_id": "alice",
		"favorite_events": [1, 2],
		"created_events": [666]
	}`)
	var req SyncRequest
	require.NoError(t, json.Unmarshal(body, &req))

	synced, err := engine.Sync(req)
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{1, 2}, synced.FavoriteEvents)
	assert.Equal(t, models.Int64List{100}, synced.CreatedEvents)

	stored, err := engine.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{100}, stored.CreatedEvents)
}

func TestSyncRejectsUserMismatch(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, nil, nil)

	record, err := engine.Get("alice")
	require.NoError(t, err)
	replacesBefore := store.replaces

	_, err = engine.Sync(SyncRequest{
		ID:             record.ID,
		UserID:         "mallory",
		FavoriteEvents: models.Int64List{1},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, replacesBefore, store.replaces, "rejected sync must not write")
}

func TestSyncUnknownRecordIsNotFound(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	_, err := engine.Sync(SyncRequest{ID: 12345, UserID: "alice"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetCreatesEmptyRecordOnce(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	first, err := engine.Get("bob")
	require.NoError(t, err)
	assert.Empty(t, first.FavoriteEvents)
	assert.Empty(t, first.FavoriteMicroevents)
	assert.Empty(t, first.SavedEvents)
	assert.Empty(t, first.SavedMicroevents)
	assert.Empty(t, first.CreatedEvents)
	assert.Empty(t, first.CreatedMicroevents)

	second, err := engine.Get("bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UserID, second.UserID)
}

// N concurrent toggles on distinct ids against one user must all land.
// A fetch-mutate-replace implementation without per-user serialization
// loses writes here.
func TestConcurrentTogglesConverge(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 1; i <= n; i++ {
		go func(id int64) {
			defer wg.Done()
			_, err := engine.Toggle("alice", FavoriteEvents, id)
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	record, err := engine.Get("alice")
	require.NoError(t, err)
	require.Len(t, record.FavoriteEvents, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, record.FavoriteEvents.Contains(i), "id %d lost", i)
	}
}

func TestConcurrentTogglePairsCancelOut(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n * 2)
	for i := 1; i <= n; i++ {
		for j := 0; j < 2; j++ {
			go func(id int64) {
				defer wg.Done()
				_, err := engine.Toggle("alice", SavedMicroevents, id)
				assert.NoError(t, err)
			}(int64(i))
		}
	}
	wg.Wait()

	record, err := engine.Get("alice")
	require.NoError(t, err)
	assert.Empty(t, record.SavedMicroevents)
}

func TestHydrateEventsDropsStaleIDs(t *testing.T) {
	store := newFakeStore()
	events := &fakeEvents{rows: map[int64]models.Event{
		1: {ID: 1, Name: "Desert Daze"},
		3: {ID: 3, Name: "Pine Hollow Faire"},
	}}
	engine := newTestEngine(store, events, nil)

	for _, id := range []int64{1, 2, 3} {
		_, err := engine.Toggle("alice", FavoriteEvents, id)
		require.NoError(t, err)
	}

	out, err := engine.HydrateEvents("alice", FavoriteEvents)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestHydrateEventsDropsUndecodableSnapshots(t *testing.T) {
	store := newFakeStore()
	events := &fakeEvents{rows: map[int64]models.Event{
		1: {ID: 1, EventData: models.JSONDocument(`{"name":"ok"}`)},
		2: {ID: 2, EventData: models.JSONDocument(`{broken`)},
	}}
	engine := newTestEngine(store, events, nil)

	for _, id := range []int64{1, 2} {
		_, err := engine.Toggle("alice", SavedEvents, id)
		require.NoError(t, err)
	}

	out, err := engine.HydrateEvents("alice", SavedEvents)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestHydrateMicroeventsDropsStaleIDs(t *testing.T) {
	store := newFakeStore()
	micro := &fakeMicroevents{rows: map[int64]models.Microevent{
		5: {ID: 5, Name: "Drum Circle"},
	}}
	engine := newTestEngine(store, nil, micro)

	for _, id := range []int64{5, 6} {
		_, err := engine.Toggle("alice", FavoriteMicroevents, id)
		require.NoError(t, err)
	}

	out, err := engine.HydrateMicroevents("alice", FavoriteMicroevents)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(5), out[0].ID)
}

func TestHydrateRejectsMismatchedSetKind(t *testing.T) {
	engine := newTestEngine(newFakeStore(), nil, nil)

	_, err := engine.HydrateEvents("alice", FavoriteMicroevents)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = engine.HydrateMicroevents("alice", SavedEvents)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
