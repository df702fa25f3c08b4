package services

import (
	"context"
	"errors"
	"net/http"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"time"
)

var ErrLedgerDisabled = errors.New("ledger service is not configured")

type recordCleaningResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
}

type markPaidRequest struct {
	ID            string        `json:"id"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaidAt        time.Time     `json:"paidAt"`
}

// LedgerService records cleanings with the external compensation ledger.
type LedgerService struct {
	client  *http.Client
	baseURL string
	log     logger.Logger
}

func NewLedgerService(baseURL string, timeout time.Duration) *LedgerService {
	return &LedgerService{
		client:  newRemoteClient(timeout),
		baseURL: baseURL,
		log:     logger.New("LedgerService"),
	}
}

func (s *LedgerService) IsConfigured() bool {
	return s.baseURL != ""
}

func (s *LedgerService) RecordCleaning(ctx context.Context, record CleaningRecordRequest) (string, error) {
	log := logger.NewWithContext(ctx, "LedgerService").Function("RecordCleaning")

	if !s.IsConfigured() {
		return "", ErrLedgerDisabled
	}

	var resp recordCleaningResponse
	if err := doJSON(ctx, s.client, log, http.MethodPost, s.baseURL, record, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		return "", log.ErrorWithType(ErrRemote, "ledger rejected cleaning record",
			"roomNumber", record.RoomNumber, "error", resp.Error)
	}

	log.Info("Cleaning recorded", "roomNumber", record.RoomNumber, "recordID", resp.ID)
	return resp.ID, nil
}

func (s *LedgerService) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	log := logger.NewWithContext(ctx, "LedgerService").Function("MarkPaid")

	if !s.IsConfigured() {
		return ErrLedgerDisabled
	}

	req := markPaidRequest{ID: id, PaymentStatus: PaymentStatusPaid, PaidAt: paidAt}
	if err := doJSON(ctx, s.client, log, http.MethodPut, s.baseURL, req, nil); err != nil {
		return err
	}

	log.Info("Ledger record marked paid", "recordID", id)
	return nil
}

func (s *LedgerService) List(ctx context.Context) ([]LedgerRecord, error) {
	log := logger.NewWithContext(ctx, "LedgerService").Function("List")

	if !s.IsConfigured() {
		return nil, ErrLedgerDisabled
	}

	var records []LedgerRecord
	if err := doJSON(ctx, s.client, log, http.MethodGet, s.baseURL, nil, &records); err != nil {
		return nil, err
	}

	if records == nil {
		records = []LedgerRecord{}
	}
	return records, nil
}
