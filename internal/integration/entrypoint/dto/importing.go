package dto

import (
	"github.com/credit-ledger/backend/internal/application/usecase/importing"
)

// ImportBatchResponse represents the response for a POS workbook import.
type ImportBatchResponse struct {
	CreditTransactions int `json:"credit_transactions"`
	Items              int `json:"items"`
	SkippedNoIdentity  int `json:"skipped_no_identity"`
	SkippedNonCredit   int `json:"skipped_non_credit"`
}

// ToImportBatchResponse converts an ImportBatchOutput to an ImportBatchResponse DTO.
func ToImportBatchResponse(out *importing.ImportBatchOutput) ImportBatchResponse {
	return ImportBatchResponse{
		CreditTransactions: out.CreditTransactions,
		Items:              out.Items,
		SkippedNoIdentity:  out.SkippedNoIdentity,
		SkippedNonCredit:   out.SkippedNonCredit,
	}
}
