package application

import (
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

// Application references its job by id only. Exactly one of ResumeFileID and
// ResumeURL is set on records produced by the submission service; storage
// tolerates both. Job is filled on listing so a consumer can render the
// application together with its posting in one round trip.
type Application struct {
	ID           common.UUID `json:"id"`
	JobID        common.UUID `json:"job_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	ResumeFileID common.UUID `json:"resume_file_id,omitempty"`
	ResumeURL    string      `json:"resume_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	Job          *job.Job    `json:"job,omitempty"`
}

// PlaceholderJob stands in for a job that was deleted after the application
// was submitted but escaped the cascade.
func PlaceholderJob(id common.UUID) *job.Job {
	return &job.Job{ID: id, Title: "Unknown job"}
}
