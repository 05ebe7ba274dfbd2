package dto

import (
	"github.com/credit-ledger/backend/internal/application/usecase/statement"
	"github.com/credit-ledger/backend/internal/domain/entity"
)

// StatementReceiptResponse represents one receipt in a customer statement.
type StatementReceiptResponse struct {
	ReceiptID string `json:"receipt_id"`
	Date      string `json:"date"`
	Total     string `json:"total"`
}

// StatementItemResponse represents one receipt line item in a customer statement.
type StatementItemResponse struct {
	ReceiptID string `json:"receipt_id"`
	ItemName  string `json:"item_name"`
	Quantity  string `json:"quantity"`
	Rate      string `json:"rate"`
	Amount    string `json:"amount"`
}

// StatementResponse represents a customer's full statement.
type StatementResponse struct {
	Phone           string                     `json:"phone"`
	Name            string                     `json:"name"`
	Address         string                     `json:"address,omitempty"`
	Receipts        []StatementReceiptResponse `json:"receipts"`
	Items           []StatementItemResponse    `json:"items"`
	Payments        []PaymentEventResponse     `json:"payments"`
	AmountDue       string                     `json:"amount_due"`
	PreviousBalance string                     `json:"previous_balance"`
	AdvanceAmount   string                     `json:"advance_amount"`
	AmountPaid      string                     `json:"amount_paid"`
	RemainingAmount string                     `json:"remaining_amount"`
	PaymentStatus   string                     `json:"payment_status"`
}

// ToStatementResponse converts a GetStatementOutput to a StatementResponse DTO.
func ToStatementResponse(out *statement.GetStatementOutput) StatementResponse {
	receipts := make([]StatementReceiptResponse, len(out.Receipts))
	for i, r := range out.Receipts {
		receipts[i] = StatementReceiptResponse{
			ReceiptID: r.ReceiptID,
			Date:      r.Date.Format("2006-01-02"),
			Total:     r.Total.String(),
		}
	}

	items := make([]StatementItemResponse, len(out.Items))
	for i, item := range out.Items {
		items[i] = toStatementItemResponse(item)
	}

	payments := make([]PaymentEventResponse, len(out.Payments))
	for i, event := range out.Payments {
		payments[i] = ToPaymentEventResponse(event)
	}

	return StatementResponse{
		Phone:           out.Phone,
		Name:            out.Name,
		Address:         out.Address,
		Receipts:        receipts,
		Items:           items,
		Payments:        payments,
		AmountDue:       out.AmountDue.String(),
		PreviousBalance: out.PreviousBalance.String(),
		AdvanceAmount:   out.AdvanceAmount.String(),
		AmountPaid:      out.AmountPaid.String(),
		RemainingAmount: out.RemainingAmount.String(),
		PaymentStatus:   string(out.PaymentStatus),
	}
}

func toStatementItemResponse(item *entity.ReceiptItem) StatementItemResponse {
	return StatementItemResponse{
		ReceiptID: item.ReceiptID,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity.String(),
		Rate:      item.Rate.String(),
		Amount:    item.Amount.String(),
	}
}
