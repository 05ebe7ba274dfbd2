package dto

import (
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/usecase/ledger"
	"github.com/credit-ledger/backend/internal/domain/entity"
)

// LedgerRowRequest represents one ledger row in a bulk save request.
type LedgerRowRequest struct {
	Phone               string  `json:"phone" binding:"required"`
	Name                string  `json:"name"`
	Address             string  `json:"address,omitempty"`
	Email               string  `json:"email,omitempty"`
	AmountDue           string  `json:"amount_due"`
	PreviousBalance     string  `json:"previous_balance"`
	AdvanceAmount       string  `json:"advance_amount"`
	PaymentStatus       string  `json:"payment_status" binding:"required,oneof=Due Partial Settled Advance"`
	AmountPaid          string  `json:"amount_paid"`
	PaymentMode         string  `json:"payment_mode,omitempty"`
	ReceivedOn          string  `json:"received_on,omitempty"`
	CashCollected       bool    `json:"cash_collected"`
	CashDeposited       bool    `json:"cash_deposited"`
	Remarks             string  `json:"remarks,omitempty"`
	AdvanceCarryForward *string `json:"advance_carry_forward,omitempty"`
}

// SaveLedgerRequest represents the request body for a bulk ledger save.
type SaveLedgerRequest struct {
	Rows []LedgerRowRequest `json:"rows" binding:"required,min=1,dive"`
}

// SaveLedgerResponse represents the response for a bulk ledger save.
type SaveLedgerResponse struct {
	Saved int `json:"saved"`
}

// LedgerRowResponse represents one reconciled ledger row in API responses.
type LedgerRowResponse struct {
	Phone               string `json:"phone"`
	Name                string `json:"name"`
	Address             string `json:"address,omitempty"`
	Email               string `json:"email,omitempty"`
	AmountDue           string `json:"amount_due"`
	PreviousBalance     string `json:"previous_balance"`
	AdvanceGiven        bool   `json:"advance_given"`
	AdvanceAmount       string `json:"advance_amount"`
	PaymentStatus       string `json:"payment_status"`
	AmountPaid          string `json:"amount_paid"`
	RemainingAmount     string `json:"remaining_amount"`
	PaymentMode         string `json:"payment_mode,omitempty"`
	ReceivedOn          string `json:"received_on,omitempty"`
	CashCollected       bool   `json:"cash_collected"`
	CashDeposited       bool   `json:"cash_deposited"`
	Remarks             string `json:"remarks,omitempty"`
	AdvanceCarryForward string `json:"advance_carry_forward"`
}

// LedgerResponse represents the response for a ledger read.
type LedgerResponse struct {
	Rows      []LedgerRowResponse `json:"rows"`
	Count     int                 `json:"count"`
	FromCache bool                `json:"from_cache"`
}

// ToLedgerRowResponse converts a domain LedgerView to a LedgerRowResponse DTO.
func ToLedgerRowResponse(v *entity.LedgerView) LedgerRowResponse {
	return LedgerRowResponse{
		Phone:               v.Phone,
		Name:                v.Name,
		Address:             v.Address,
		Email:               v.Email,
		AmountDue:           v.AmountDue.String(),
		PreviousBalance:     v.PreviousBalance.String(),
		AdvanceGiven:        v.AdvanceGiven,
		AdvanceAmount:       v.AdvanceAmount.String(),
		PaymentStatus:       string(v.PaymentStatus),
		AmountPaid:          v.AmountPaid.String(),
		RemainingAmount:     v.RemainingAmount.String(),
		PaymentMode:         v.PaymentMode,
		ReceivedOn:          v.ReceivedOn,
		CashCollected:       v.CashCollected,
		CashDeposited:       v.CashDeposited,
		Remarks:             v.Remarks,
		AdvanceCarryForward: v.AdvanceCarryForward.String(),
	}
}

// ToLedgerResponse converts a GetLedgerOutput to a LedgerResponse DTO.
func ToLedgerResponse(out *ledger.GetLedgerOutput) LedgerResponse {
	rows := make([]LedgerRowResponse, len(out.Views))
	for i, v := range out.Views {
		rows[i] = ToLedgerRowResponse(v)
	}
	return LedgerResponse{
		Rows:      rows,
		Count:     len(rows),
		FromCache: out.FromCache,
	}
}

// ToLedgerView converts a LedgerRowRequest into a domain LedgerView. Amount
// fields are decimal strings; a blank field means zero.
func (r LedgerRowRequest) ToLedgerView() (*entity.LedgerView, error) {
	amountDue, err := parseOptionalDecimal(r.AmountDue)
	if err != nil {
		return nil, err
	}
	previousBalance, err := parseOptionalDecimal(r.PreviousBalance)
	if err != nil {
		return nil, err
	}
	advanceAmount, err := parseOptionalDecimal(r.AdvanceAmount)
	if err != nil {
		return nil, err
	}
	amountPaid, err := parseOptionalDecimal(r.AmountPaid)
	if err != nil {
		return nil, err
	}

	carryForward := advanceAmount
	if r.AdvanceCarryForward != nil {
		carryForward, err = parseOptionalDecimal(*r.AdvanceCarryForward)
		if err != nil {
			return nil, err
		}
	}

	return &entity.LedgerView{
		Phone:               r.Phone,
		Name:                r.Name,
		Address:             r.Address,
		Email:               r.Email,
		AmountDue:           amountDue,
		PreviousBalance:     previousBalance,
		AdvanceGiven:        advanceAmount.IsPositive(),
		AdvanceAmount:       advanceAmount,
		PaymentStatus:       entity.PaymentStatus(r.PaymentStatus),
		AmountPaid:          amountPaid,
		PaymentMode:         r.PaymentMode,
		ReceivedOn:          r.ReceivedOn,
		CashCollected:       r.CashCollected,
		CashDeposited:       r.CashDeposited,
		Remarks:             r.Remarks,
		AdvanceCarryForward: carryForward,
	}, nil
}

func parseOptionalDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
