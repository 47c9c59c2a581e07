package stores

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nomadfest/api/internal/models"
)

// newTestDB opens a per-test in-memory database. The shared cache keeps all
// pooled connections on the same database for the life of the test.
func newTestDB(t *testing.T) *gorm.DB {
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
		&models.CampingProfile{},
	))
	return db
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func seedEventType(t *testing.T, db *gorm.DB) models.EventType {
	t.Helper()
	eventType := models.EventType{Name: "Music Festival", Category: "music"}
	require.NoError(t, db.Create(&eventType).Error)
	return eventType
}
