package events

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nomadfest/api/internal/apperr"
	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/models"
	"github.com/nomadfest/api/internal/stores"
)

type fixture struct {
	db     *gorm.DB
	engine *collections.Engine
	events *EventLogic
	micro  *MicroeventLogic
	typeID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.EventType{},
		&models.Event{},
		&models.Microevent{},
		&models.UserCollection{},
	))

	eventType := models.EventType{Name: "Music Festival", Category: "music"}
	require.NoError(t, db.Create(&eventType).Error)

	log := zap.NewNop()
	eventStore := stores.NewEventStore(db)
	microStore := stores.NewMicroeventStore(db)
	engine := collections.NewEngine(stores.NewCollectionStore(db), eventStore, microStore, log)

	return &fixture{
		db:     db,
		engine: engine,
		events: NewEventLogic(db, eventStore, engine, log),
		micro:  NewMicroeventLogic(db, microStore, engine, log),
		typeID: eventType.ID,
	}
}

func claimsFor(userID string, role auth.Role) *auth.Claims {
	return &auth.Claims{
		Role:             string(role),
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
}

func validDoc(typeID int64) models.EventDocument {
	return models.EventDocument{
		Name:        "High Desert Gathering",
		Description: "A weekend of music in the desert",
		EventTypeID: typeID,
		LocationInfo: models.Location{
			Address:   "123 Dusty Rd",
			Latitude:  34.5,
			Longitude: -116.2,
		},
	}
}

func TestCreateEventValidation(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	cases := []struct {
		name   string
		mutate func(*models.EventDocument)
	}{
		{"empty name", func(d *models.EventDocument) { d.Name = "  " }},
		{"empty description", func(d *models.EventDocument) { d.Description = "" }},
		{"latitude too high", func(d *models.EventDocument) { d.LocationInfo.Latitude = 90.5 }},
		{"latitude too low", func(d *models.EventDocument) { d.LocationInfo.Latitude = -91 }},
		{"longitude too high", func(d *models.EventDocument) { d.LocationInfo.Longitude = 180.5 }},
		{"longitude too low", func(d *models.EventDocument) { d.LocationInfo.Longitude = -181 }},
		{"end before start", func(d *models.EventDocument) {
			start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
			end := start.Add(-48 * time.Hour)
			d.DateInfo.StartDate = &start
			d.DateInfo.EndDate = &end
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDoc(f.typeID)
			tc.mutate(&doc)
			_, err := f.events.Create(doc, owner)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestCreateEventGrantsOwnership(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	id, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)
	require.NotZero(t, id)

	record, err := f.engine.Get("owner")
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{id}, record.CreatedEvents)

	// Queryable columns mirror the snapshot.
	stored, err := f.events.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "High Desert Gathering", stored.Name)
	assert.Equal(t, 34.5, stored.LocationInfo.Latitude)
}

func TestUpdateEventOwnerOrAdminGate(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)
	stranger := claimsFor("stranger", auth.RoleUser)
	admin := claimsFor("admin", auth.RoleAdmin)

	id, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)

	doc := validDoc(f.typeID)
	doc.Name = "Renamed Gathering"

	err = f.events.Update(id, doc, stranger)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden),
		"non-owner without admin role must be rejected")

	require.NoError(t, f.events.Update(id, doc, owner))

	doc.Name = "Admin Renamed"
	require.NoError(t, f.events.Update(id, doc, admin),
		"admin bypasses ownership")

	stored, err := f.events.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Admin Renamed", stored.Name)
}

func TestUpdateEventNotFound(t *testing.T) {
	f := newFixture(t)
	admin := claimsFor("admin", auth.RoleAdmin)

	err := f.events.Update(99999, validDoc(f.typeID), admin)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteEventRevokesOwnership(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	id, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)

	require.NoError(t, f.events.Delete(id, owner))

	record, err := f.engine.Get("owner")
	require.NoError(t, err)
	assert.Empty(t, record.CreatedEvents)

	_, err = f.events.GetByID(id)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteEventForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)
	stranger := claimsFor("stranger", auth.RoleUser)

	id, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)

	err = f.events.Delete(id, stranger)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// Forbidden, not gone: the row is untouched.
	_, err = f.events.GetByID(id)
	require.NoError(t, err)
}

func TestDeleteEventNotFoundSkipsRevoke(t *testing.T) {
	f := newFixture(t)
	admin := claimsFor("admin", auth.RoleAdmin)

	err := f.events.Delete(99999, admin)
	assert.True(t, apperr.IsNotFound(err))
}

// An admin delete revokes against the admin's own collection, so the
// creator keeps a dangling id. Hydration tolerates it by dropping the
// unresolvable entry.
func TestAdminDeleteLeavesDanglingIDDroppedOnHydration(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)
	admin := claimsFor("admin", auth.RoleAdmin)

	id, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)

	require.NoError(t, f.events.Delete(id, admin))

	record, err := f.engine.Get("owner")
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{id}, record.CreatedEvents, "dangling id remains stored")

	hydrated, err := f.engine.HydrateEvents("owner", collections.CreatedEvents)
	require.NoError(t, err)
	assert.Empty(t, hydrated, "hydration drops ids that no longer resolve")
}

func TestCreateMicroeventSetsCallerAsOwner(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	eventID, err := f.events.Create(validDoc(f.typeID), owner)
	require.NoError(t, err)

	id, err := f.micro.Create(models.Microevent{
		EventID: eventID,
		UserID:  "spoofed-user",
		Name:    "Sunrise Yoga",
	}, owner)
	require.NoError(t, err)

	row, err := f.micro.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "owner", row.UserID, "owner comes from claims, not the payload")

	record, err := f.engine.Get("owner")
	require.NoError(t, err)
	assert.Equal(t, models.Int64List{id}, record.CreatedMicroevents)
}

func TestMicroeventValidation(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	_, err := f.micro.Create(models.Microevent{EventID: 1, Name: "   "}, owner)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.micro.Create(models.Microevent{Name: "No Parent"}, owner)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = f.micro.Create(models.Microevent{
		EventID:   1,
		Name:      "Backwards",
		StartTime: &start,
		EndTime:   &end,
	}, owner)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestMicroeventUpdateOwnerOrAdminGate(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)
	stranger := claimsFor("stranger", auth.RoleUser)
	admin := claimsFor("admin", auth.RoleAdmin)

	id, err := f.micro.Create(models.Microevent{EventID: 1, Name: "Original"}, owner)
	require.NoError(t, err)

	err = f.micro.Update(id, models.Microevent{EventID: 1, Name: "Hijacked"}, stranger)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	require.NoError(t, f.micro.Update(id, models.Microevent{EventID: 1, Name: "Renamed"}, owner))
	require.NoError(t, f.micro.Update(id, models.Microevent{EventID: 1, Name: "Admin Renamed", Archive: true}, admin))

	row, err := f.micro.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Admin Renamed", row.Name)
	assert.True(t, row.Archive)
}

func TestMicroeventDeleteRevokesOwnership(t *testing.T) {
	f := newFixture(t)
	owner := claimsFor("owner", auth.RoleUser)

	id, err := f.micro.Create(models.Microevent{EventID: 1, Name: "Doomed"}, owner)
	require.NoError(t, err)

	require.NoError(t, f.micro.Delete(id, owner))

	record, err := f.engine.Get("owner")
	require.NoError(t, err)
	assert.Empty(t, record.CreatedMicroevents)

	err = f.micro.Delete(id, claimsFor("admin", auth.RoleAdmin))
	assert.True(t, apperr.IsNotFound(err))
}
