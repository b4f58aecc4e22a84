package application

import (
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return Status(value), true
	default:
		return "", false
	}
}

// CanTransition reports whether an application may move from one status to
// another. Rejected and hired are terminal.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusReviewed:
		return from == StatusPending
	case StatusShortlisted:
		return from == StatusPending || from == StatusReviewed
	case StatusRejected:
		return from == StatusPending || from == StatusReviewed || from == StatusShortlisted
	case StatusHired:
		return from == StatusShortlisted
	default:
		return false
	}
}

func IsTerminal(status Status) bool {
	return status == StatusRejected || status == StatusHired
}

type Application struct {
	ID           common.UUID `json:"id"`
	PostingID    common.UUID `json:"job_posting_id"`
	ApplicantID  common.UUID `json:"applicant_id"`
	CVPath       string      `json:"-"`
	CoverLetter  string      `json:"cover_letter,omitempty"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
