package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRosterServer(t *testing.T, handler func(req RosterRequest) (int, any)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req RosterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRosterService_List(t *testing.T) {
	server := newRosterServer(t, func(req RosterRequest) (int, any) {
		assert.Equal(t, RosterActionList, req.Action)
		return http.StatusOK, map[string]any{
			"success": true,
			"housekeepers": []map[string]any{
				{"id": "1", "name": "Maria", "email": "maria@hotel.test", "created_at": "2024-05-01T08:00:00Z"},
				{"id": "2", "name": "Olga"},
			},
		}
	})

	service := NewRosterService(server.URL, time.Second)
	housekeepers, err := service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, housekeepers, 2)
	assert.Equal(t, "Maria", housekeepers[0].Name)
	assert.Equal(t, "maria@hotel.test", housekeepers[0].Email)
}

func TestRosterService_AddAndDelete(t *testing.T) {
	var seen []RosterRequest
	server := newRosterServer(t, func(req RosterRequest) (int, any) {
		seen = append(seen, req)
		return http.StatusOK, map[string]any{"success": true}
	})

	service := NewRosterService(server.URL, time.Second)
	require.NoError(t, service.Add(context.Background(), "Olga", "olga@hotel.test"))
	require.NoError(t, service.Delete(context.Background(), "Olga"))

	require.Len(t, seen, 2)
	assert.Equal(t, RosterRequest{Action: RosterActionAdd, Name: "Olga", Email: "olga@hotel.test"}, seen[0])
	assert.Equal(t, RosterRequest{Action: RosterActionDelete, Name: "Olga"}, seen[1])
}

func TestRosterService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":false,"error":"name taken"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewRosterService(server.URL, time.Second).List(context.Background())
			assert.ErrorIs(t, err, ErrRemote)
		})
	}
}

func TestRosterService_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewRosterService(server.URL, 50*time.Millisecond).List(context.Background())

	assert.ErrorIs(t, err, ErrRemote)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRosterService_Unconfigured(t *testing.T) {
	_, err := NewRosterService("", time.Second).List(context.Background())
	assert.ErrorIs(t, err, ErrRemote)
}
