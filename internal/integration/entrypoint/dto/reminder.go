package dto

import (
	"github.com/credit-ledger/backend/internal/application/usecase/reminder"
)

// QueueRemindersResponse represents the response for a reminder queue request.
type QueueRemindersResponse struct {
	Queued         int `json:"queued"`
	SkippedNoEmail int `json:"skipped_no_email"`
	SkippedSettled int `json:"skipped_settled"`
}

// ToQueueRemindersResponse converts a QueueRemindersOutput to a QueueRemindersResponse DTO.
func ToQueueRemindersResponse(out *reminder.QueueRemindersOutput) QueueRemindersResponse {
	return QueueRemindersResponse{
		Queued:         out.Queued,
		SkippedNoEmail: out.SkippedNoEmail,
		SkippedSettled: out.SkippedSettled,
	}
}
