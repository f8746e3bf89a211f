package analytics

import (
	"context"
	"time"

	"jobboard/internal/common"
)

// Event is a best-effort audit record. Services ignore write failures.
type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
}
