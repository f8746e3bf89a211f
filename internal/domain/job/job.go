package job

import (
	"time"

	"jobboard/internal/common"
)

type Job struct {
	ID          common.UUID `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company,omitempty"`
	Location    string      `json:"location,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
