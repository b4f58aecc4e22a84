package notification

import (
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Kind string

const (
	KindNewApplication Kind = "new_application"
	KindStatusUpdated  Kind = "status_updated"
)

// Event is an append-only per-user record. Only the read flag ever changes,
// and only the recipient may flip it. Message text is rendered at the API
// boundary from kind and payload, never stored.
type Event struct {
	ID          common.UUID       `json:"id"`
	RecipientID common.UUID       `json:"recipient_id"`
	Kind        Kind              `json:"kind"`
	Payload     map[string]string `json:"payload"`
	Read        bool              `json:"read"`
	CreatedAt   time.Time         `json:"created_at"`
}
