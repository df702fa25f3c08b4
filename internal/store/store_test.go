package store

import (
	"context"
	"errors"
	"roomboard/internal/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("backend down")
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.Get(ctx, KeyRooms)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyRooms, []byte(`[]`)))
	value, found, err := s.Get(ctx, KeyRooms)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, s.Delete(ctx, KeyRooms))
	_, found, err = s.Get(ctx, KeyRooms)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	raw := []byte(`"abc"`)
	require.NoError(t, s.Set(ctx, KeySession, raw))
	raw[1] = 'x'

	value, _, err := s.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(value))
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	fallback := payload{Name: "default"}

	tests := []struct {
		name     string
		store    Store
		seed     string
		expected payload
	}{
		{name: "missing key", store: NewMemoryStore(), expected: fallback},
		{name: "valid value", store: NewMemoryStore(), seed: `{"name":"rooms","count":3}`, expected: payload{Name: "rooms", Count: 3}},
		{name: "corrupt value", store: NewMemoryStore(), seed: `{"name":`, expected: fallback},
		{name: "empty value", store: NewMemoryStore(), seed: "", expected: fallback},
		{name: "read failure", store: failingStore{}, expected: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mem, ok := tt.store.(*MemoryStore); ok && tt.seed != "" {
				require.NoError(t, mem.Set(ctx, "key", []byte(tt.seed)))
			}

			assert.Equal(t, tt.expected, LoadJSON(ctx, tt.store, "key", fallback))
		})
	}
}

func TestSaveJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveJSON(ctx, s, KeyUsers, payload{Name: "maria", Count: 1}))
	assert.Equal(t, payload{Name: "maria", Count: 1}, LoadJSON(ctx, s, KeyUsers, payload{}))

	assert.Error(t, SaveJSON(ctx, failingStore{}, KeyUsers, payload{}))
	assert.Error(t, SaveJSON(ctx, s, KeyUsers, func() {}))
}

func TestSQLStore_Upsert(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)

	s := NewSQLStore(db)

	_, found, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyHistory, []byte(`[{"date":"2024-05-01"}]`)))
	require.NoError(t, s.Set(ctx, KeyHistory, []byte(`[{"date":"2024-05-02"}]`)))

	value, found, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"date":"2024-05-02"}]`, string(value))

	var count int64
	require.NoError(t, db.Table("state_entries").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, s.Delete(ctx, KeyHistory))
	_, found, err = s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewFromDriver(t *testing.T) {
	s, err := NewFromDriver(database.DB{}, "memory")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewFromDriver(database.DB{}, "postgres")
	assert.Error(t, err)

	_, err = NewFromDriver(database.DB{}, "valkey")
	assert.Error(t, err)

	_, err = NewFromDriver(database.DB{}, "unknown")
	assert.Error(t, err)
}
