package ledgerController

import (
	"context"
	"errors"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation = errors.New("validation error")
	ErrRemote     = errors.New("ledger service unavailable")
)

type LedgerClient interface {
	List(ctx context.Context) ([]LedgerRecord, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}

type LedgerControllerInterface interface {
	List(ctx context.Context) ([]LedgerRecord, error)
	MarkPaid(ctx context.Context, id string) error
	Summary(ctx context.Context) ([]HousekeeperPayout, error)
}

type LedgerController struct {
	ledger LedgerClient
	now    func() time.Time
}

func New(ledger LedgerClient, now func() time.Time) *LedgerController {
	if now == nil {
		now = time.Now
	}
	return &LedgerController{ledger: ledger, now: now}
}

func (c *LedgerController) List(ctx context.Context) ([]LedgerRecord, error) {
	log := logger.NewWithContext(ctx, "ledgerController").Function("List")

	records, err := c.ledger.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list ledger records", errors.Join(ErrRemote, err))
	}

	return records, nil
}

func (c *LedgerController) MarkPaid(ctx context.Context, id string) error {
	log := logger.NewWithContext(ctx, "ledgerController").Function("MarkPaid")

	if strings.TrimSpace(id) == "" {
		return log.ErrorWithType(ErrValidation, "ledger record id is required")
	}

	if err := c.ledger.MarkPaid(ctx, id, c.now()); err != nil {
		return log.Err("failed to mark ledger record paid", errors.Join(ErrRemote, err), "recordID", id)
	}

	return nil
}

// Summary totals paid and unpaid compensation per housekeeper, sorted by name.
func (c *LedgerController) Summary(ctx context.Context) ([]HousekeeperPayout, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return summarize(records), nil
}

func summarize(records []LedgerRecord) []HousekeeperPayout {
	byName := make(map[string]*HousekeeperPayout)
	for _, record := range records {
		payout, ok := byName[record.HousekeeperName]
		if !ok {
			payout = &HousekeeperPayout{
				HousekeeperName: record.HousekeeperName,
				Paid:            decimal.Zero,
				Unpaid:          decimal.Zero,
			}
			byName[record.HousekeeperName] = payout
		}

		payout.Cleanings++
		if record.PaymentStatus == PaymentStatusPaid {
			payout.Paid = payout.Paid.Add(record.Payment)
		} else {
			payout.Unpaid = payout.Unpaid.Add(record.Payment)
		}
	}

	payouts := make([]HousekeeperPayout, 0, len(byName))
	for _, payout := range byName {
		payouts = append(payouts, *payout)
	}
	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].HousekeeperName < payouts[j].HousekeeperName
	})

	return payouts
}
