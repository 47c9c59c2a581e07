package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64ListScanNullAndEmpty(t *testing.T) {
	var list Int64List
	require.NoError(t, list.Scan(nil))
	assert.Equal(t, Int64List{}, list)

	require.NoError(t, list.Scan([]byte{}))
	assert.Equal(t, Int64List{}, list)

	require.NoError(t, list.Scan([]byte(`[1,2,3]`)))
	assert.Equal(t, Int64List{1, 2, 3}, list)

	require.NoError(t, list.Scan(`[4]`))
	assert.Equal(t, Int64List{4}, list)

	assert.Error(t, list.Scan(42))
}

func TestInt64ListValueNilIsEmptyArray(t *testing.T) {
	var list Int64List
	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestInt64ListContains(t *testing.T) {
	list := Int64List{10, 20}
	assert.True(t, list.Contains(10))
	assert.False(t, list.Contains(30))
	assert.False(t, Int64List{}.Contains(10))
}

func TestEventResponseDecodesSnapshot(t *testing.T) {
	event := Event{
		ID:        7,
		EventData: JSONDocument(`{"name":"Snapshot Fest","description":"from the snapshot"}`),
		EventType: EventType{ID: 1, Name: "Music Festival"},
	}

	resp, err := event.Response()
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Snapshot Fest", resp.Name)
	assert.Equal(t, "Music Festival", resp.EventType.Name)
}

func TestEventResponseFailsOnMalformedSnapshot(t *testing.T) {
	event := Event{ID: 7, EventData: JSONDocument(`{"name":`)}
	_, err := event.Response()
	assert.Error(t, err)
}
