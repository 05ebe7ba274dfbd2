package dto

import (
	"github.com/credit-ledger/backend/internal/application/usecase/dashboard"
)

// StatusCountsResponse represents customer counts per payment status.
type StatusCountsResponse struct {
	Due     int `json:"due"`
	Partial int `json:"partial"`
	Settled int `json:"settled"`
	Advance int `json:"advance"`
}

// ModeBreakdownResponse represents collected amounts for one payment channel.
type ModeBreakdownResponse struct {
	Amount  string `json:"amount"`
	Count   int    `json:"count"`
	Percent string `json:"percent"`
}

// OutstandingCustomerResponse represents one row of the top-outstanding list.
type OutstandingCustomerResponse struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Remaining string `json:"remaining"`
}

// DashboardSummaryResponse represents the monthly dashboard summary.
type DashboardSummaryResponse struct {
	TotalCustomers  int                           `json:"total_customers"`
	TotalDue        string                        `json:"total_due"`
	TotalReceived   string                        `json:"total_received"`
	TotalRemaining  string                        `json:"total_remaining"`
	RecoveryPercent string                        `json:"recovery_percent"`
	Statuses        StatusCountsResponse          `json:"statuses"`
	UPI             ModeBreakdownResponse         `json:"upi"`
	Cash            ModeBreakdownResponse         `json:"cash"`
	TopOutstanding  []OutstandingCustomerResponse `json:"top_outstanding"`
}

// ToDashboardSummaryResponse converts a GetSummaryOutput to a DashboardSummaryResponse DTO.
func ToDashboardSummaryResponse(out *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	top := make([]OutstandingCustomerResponse, len(out.TopOutstanding))
	for i, c := range out.TopOutstanding {
		top[i] = OutstandingCustomerResponse{
			Name:      c.Name,
			Phone:     c.Phone,
			Remaining: c.Remaining.String(),
		}
	}

	return DashboardSummaryResponse{
		TotalCustomers:  out.TotalCustomers,
		TotalDue:        out.TotalDue.String(),
		TotalReceived:   out.TotalReceived.String(),
		TotalRemaining:  out.TotalRemaining.String(),
		RecoveryPercent: out.RecoveryPercent.String(),
		Statuses: StatusCountsResponse{
			Due:     out.Statuses.Due,
			Partial: out.Statuses.Partial,
			Settled: out.Statuses.Settled,
			Advance: out.Statuses.Advance,
		},
		UPI: ModeBreakdownResponse{
			Amount:  out.UPI.Amount.String(),
			Count:   out.UPI.Count,
			Percent: out.UPI.Percent.String(),
		},
		Cash: ModeBreakdownResponse{
			Amount:  out.Cash.Amount.String(),
			Count:   out.Cash.Count,
			Percent: out.Cash.Percent.String(),
		},
		TopOutstanding: top,
	}
}
