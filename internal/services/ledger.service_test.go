package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	. "roomboard/internal/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_RecordCleaning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req CleaningRecordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "701", req.RoomNumber)
		assert.True(t, decimal.Zero.Equal(req.Payment))

		_, _ = w.Write([]byte(`{"success":true,"id":"rec-1"}`))
	}))
	defer server.Close()

	id, err := NewLedgerService(server.URL, time.Second).RecordCleaning(context.Background(), CleaningRecordRequest{
		RoomNumber: "701",
		Payment:    decimal.Zero,
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", id)
}

func TestLedgerService_RecordCleaningRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"duplicate"}`))
	}))
	defer server.Close()

	_, err := NewLedgerService(server.URL, time.Second).RecordCleaning(context.Background(), CleaningRecordRequest{})
	assert.ErrorIs(t, err, ErrRemote)
}

func TestLedgerService_MarkPaid(t *testing.T) {
	paidAt := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var req markPaidRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "rec-1", req.ID)
		assert.Equal(t, PaymentStatusPaid, req.PaymentStatus)
		assert.True(t, paidAt.Equal(req.PaidAt))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewLedgerService(server.URL, time.Second).MarkPaid(context.Background(), "rec-1", paidAt)
	assert.NoError(t, err)
}

func TestLedgerService_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[
			{"id":"rec-1","roomNumber":"701","housekeeperName":"Maria","payment":"12.50","paymentStatus":"unpaid"},
			{"id":"rec-2","roomNumber":"702","housekeeperName":"Maria","payment":"7","paymentStatus":"paid","paidAt":"2024-05-01T18:00:00Z"}
		]`))
	}))
	defer server.Close()

	records, err := NewLedgerService(server.URL, time.Second).List(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, decimal.RequireFromString("12.5").Equal(records[0].Payment))
	assert.Nil(t, records[0].PaidAt)
	require.NotNil(t, records[1].PaidAt)
}

func TestLedgerService_Disabled(t *testing.T) {
	service := NewLedgerService("", time.Second)

	assert.False(t, service.IsConfigured())

	_, err := service.RecordCleaning(context.Background(), CleaningRecordRequest{})
	assert.ErrorIs(t, err, ErrLedgerDisabled)
	assert.ErrorIs(t, service.MarkPaid(context.Background(), "x", time.Now()), ErrLedgerDisabled)
	_, err = service.List(context.Background())
	assert.ErrorIs(t, err, ErrLedgerDisabled)
}
