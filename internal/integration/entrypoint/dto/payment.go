package dto

import (
	"time"

	"github.com/credit-ledger/backend/internal/application/usecase/payment"
	"github.com/credit-ledger/backend/internal/domain/entity"
)

// RecordPaymentRequest represents the request body for payment recording.
type RecordPaymentRequest struct {
	Phone   string  `json:"phone" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
	Mode    string  `json:"mode,omitempty"`
	Date    string  `json:"date,omitempty"`
	Remarks string  `json:"remarks,omitempty"`
}

// PaymentEventResponse represents a single payment event in API responses.
type PaymentEventResponse struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	Amount      string    `json:"amount"`
	Mode        string    `json:"mode,omitempty"`
	PaymentDate string    `json:"payment_date"`
	Remarks     string    `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordPaymentResponse represents the response for payment recording.
type RecordPaymentResponse struct {
	Event           PaymentEventResponse `json:"event"`
	AmountPaid      string               `json:"amount_paid"`
	RemainingAmount string               `json:"remaining_amount"`
	PaymentStatus   string               `json:"payment_status"`
}

// PaymentListResponse represents the response for a customer's payment trail.
type PaymentListResponse struct {
	Phone  string                 `json:"phone"`
	Events []PaymentEventResponse `json:"events"`
	Total  string                 `json:"total"`
}

// ToPaymentEventResponse converts a domain PaymentEvent to a PaymentEventResponse DTO.
func ToPaymentEventResponse(event *entity.PaymentEvent) PaymentEventResponse {
	return PaymentEventResponse{
		ID:          event.ID.String(),
		Phone:       event.Phone,
		Amount:      event.Amount.String(),
		Mode:        event.Mode,
		PaymentDate: event.PaymentDate.Format("2006-01-02"),
		Remarks:     event.Remarks,
		CreatedAt:   event.CreatedAt,
	}
}

// ToRecordPaymentResponse converts a RecordPaymentOutput to a RecordPaymentResponse DTO.
func ToRecordPaymentResponse(out *payment.RecordPaymentOutput) RecordPaymentResponse {
	return RecordPaymentResponse{
		Event:           ToPaymentEventResponse(out.Event),
		AmountPaid:      out.Entry.AmountPaid.String(),
		RemainingAmount: out.Entry.RemainingAmount.String(),
		PaymentStatus:   string(out.Entry.PaymentStatus),
	}
}

// ToPaymentListResponse converts a ListPaymentsOutput to a PaymentListResponse DTO.
func ToPaymentListResponse(phone string, out *payment.ListPaymentsOutput) PaymentListResponse {
	events := make([]PaymentEventResponse, len(out.Events))
	for i, event := range out.Events {
		events[i] = ToPaymentEventResponse(event)
	}
	return PaymentListResponse{
		Phone:  phone,
		Events: events,
		Total:  out.Total.String(),
	}
}
