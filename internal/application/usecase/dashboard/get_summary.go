// Package dashboard contains dashboard summary use cases.
package dashboard

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// topOutstandingLimit is the number of customers shown in the outstanding list.
const topOutstandingLimit = 10

// LedgerViewProvider supplies the reconciled ledger view the summary is
// computed from.
type LedgerViewProvider interface {
	Views(ctx context.Context) ([]*entity.LedgerView, error)
}

// StatusCounts holds the number of customers per payment status.
type StatusCounts struct {
	Due     int
	Partial int
	Settled int
	Advance int
}

// ModeBreakdown holds collected amounts and counts for one payment channel.
type ModeBreakdown struct {
	Amount  decimal.Decimal
	Count   int
	Percent decimal.Decimal
}

// OutstandingCustomer is one row of the top-outstanding list.
type OutstandingCustomer struct {
	Name      string
	Phone     string
	Remaining decimal.Decimal
}

// GetSummaryOutput represents the monthly dashboard summary.
type GetSummaryOutput struct {
	TotalCustomers  int
	TotalDue        decimal.Decimal
	TotalReceived   decimal.Decimal
	TotalRemaining  decimal.Decimal
	RecoveryPercent decimal.Decimal
	Statuses        StatusCounts
	UPI             ModeBreakdown
	Cash            ModeBreakdown
	TopOutstanding  []OutstandingCustomer
}

// GetSummaryUseCase computes the monthly summary over the reconciled view:
// totals, recovery percentage, status distribution, UPI-vs-cash split and
// the largest outstanding balances.
type GetSummaryUseCase struct {
	views LedgerViewProvider
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(views LedgerViewProvider) *GetSummaryUseCase {
	return &GetSummaryUseCase{views: views}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	views, err := uc.views.Views(ctx)
	if err != nil {
		return nil, err
	}

	out := &GetSummaryOutput{
		TotalCustomers: len(views),
		TotalDue:       decimal.Zero,
		TotalReceived:  decimal.Zero,
		TotalRemaining: decimal.Zero,
		UPI:            ModeBreakdown{Amount: decimal.Zero},
		Cash:           ModeBreakdown{Amount: decimal.Zero},
	}

	for _, v := range views {
		out.TotalDue = out.TotalDue.Add(v.AmountDue)
		out.TotalReceived = out.TotalReceived.Add(v.AmountPaid)
		out.TotalRemaining = out.TotalRemaining.Add(v.RemainingAmount)

		switch v.PaymentStatus {
		case entity.PaymentStatusDue:
			out.Statuses.Due++
		case entity.PaymentStatusPartial:
			out.Statuses.Partial++
		case entity.PaymentStatusSettled:
			out.Statuses.Settled++
		case entity.PaymentStatusAdvance:
			out.Statuses.Advance++
		}

		if isUPIMode(v.PaymentMode) {
			out.UPI.Amount = out.UPI.Amount.Add(v.AmountPaid)
			out.UPI.Count++
		}
		if isCashMode(v.PaymentMode) {
			out.Cash.Amount = out.Cash.Amount.Add(v.AmountPaid)
			out.Cash.Count++
		}
	}

	hundred := decimal.NewFromInt(100)
	if out.TotalDue.IsPositive() {
		out.RecoveryPercent = out.TotalReceived.Div(out.TotalDue).Mul(hundred).Round(2)
	} else {
		out.RecoveryPercent = decimal.Zero
	}
	if out.TotalReceived.IsPositive() {
		out.UPI.Percent = out.UPI.Amount.Div(out.TotalReceived).Mul(hundred).Round(2)
		out.Cash.Percent = out.Cash.Amount.Div(out.TotalReceived).Mul(hundred).Round(2)
	} else {
		out.UPI.Percent = decimal.Zero
		out.Cash.Percent = decimal.Zero
	}

	out.TopOutstanding = topOutstanding(views, topOutstandingLimit)

	return out, nil
}

// isUPIMode matches the digital payment channels the operator records.
func isUPIMode(mode string) bool {
	m := strings.ToLower(mode)
	return strings.Contains(m, "upi") || strings.Contains(m, "bhim")
}

func isCashMode(mode string) bool {
	return strings.Contains(strings.ToLower(mode), "cash")
}

// topOutstanding returns the n customers with the largest remaining balance,
// descending; ties broken by phone for a stable order.
func topOutstanding(views []*entity.LedgerView, n int) []OutstandingCustomer {
	sorted := make([]*entity.LedgerView, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].RemainingAmount.Equal(sorted[j].RemainingAmount) {
			return sorted[i].RemainingAmount.GreaterThan(sorted[j].RemainingAmount)
		}
		return sorted[i].Phone < sorted[j].Phone
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	top := make([]OutstandingCustomer, 0, n)
	for _, v := range sorted[:n] {
		top = append(top, OutstandingCustomer{
			Name:      v.Name,
			Phone:     v.Phone,
			Remaining: v.RemainingAmount,
		})
	}
	return top
}
