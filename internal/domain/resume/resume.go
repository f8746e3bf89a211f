package resume

import (
	"context"
	"io"
	"time"

	"jobboard/internal/common"
)

type File struct {
	ID          common.UUID `json:"id"`
	Filename    string      `json:"filename"`
	ContentType string      `json:"content_type"`
	Length      int64       `json:"length"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Store is the chunked blob facility holding resume binaries, separate from
// the structured collections. Store drains the reader completely before the
// returned id is valid; Retrieve returns a reader positioned at offset 0.
type Store interface {
	Store(ctx context.Context, r io.Reader, filename, contentType string) (common.UUID, error)
	Retrieve(ctx context.Context, id common.UUID) (*File, io.ReadCloser, error)
	Delete(ctx context.Context, id common.UUID) error
}
