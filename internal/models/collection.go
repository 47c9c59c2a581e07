package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Int64List is a JSON array of 64-bit ids stored in a single column. A NULL
// or empty column reads back as an empty list.
type Int64List []int64

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		l = Int64List{}
	}
	return json.Marshal(l)
}

func (l *Int64List) Scan(value interface{}) error {
	if value == nil {
		*l = Int64List{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Int64List", value)
	}

	if len(raw) == 0 {
		*l = Int64List{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

func (l Int64List) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// UserCollection is the per-user record of content id lists. One row per
// user, created lazily on first access.
type UserCollection struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FavoriteEvents      Int64List `gorm:"type:json" json:"favorite_events"`
	FavoriteMicroevents Int64List `gorm:"type:json" json:"favorite_microevents"`
	SavedEvents         Int64List `gorm:"type:json" json:"saved_events"`
	SavedMicroevents    Int64List `gorm:"type:json" json:"saved_microevents"`
	CreatedEvents       Int64List `gorm:"type:json" json:"created_events"`
	CreatedMicroevents  Int64List `gorm:"type:json" json:"created_microevents"`
}

func (UserCollection) TableName() string {
	return "user_collections"
}
