package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONDocument is a raw JSON column: persisted verbatim, re-emitted verbatim
// in API responses.
type JSONDocument []byte

func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

func (d *JSONDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*d = append((*d)[0:0], v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONDocument", value)
	}
	return nil
}

func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	*d = append((*d)[0:0], data...)
	return nil
}
