package app

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
)

type JobService struct {
	repo         job.Repository
	applications application.Repository
	analytics    analytics.Repository
	logger       *zap.Logger
}

func NewJobService(repo job.Repository, applications application.Repository, analytics analytics.Repository, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{repo: repo, applications: applications, analytics: analytics, logger: logger}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if strings.TrimSpace(j.Title) == "" {
		return nil, common.NewValidationError("invalid job", map[string]string{"title": "title is required"})
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", Payload: map[string]string{"job_id": created.ID.String()}})
	return created, nil
}

// JobUpdate carries the fields a caller chose to send. Nil means "leave as
// is", so an update replaces exactly the supplied fields.
type JobUpdate struct {
	Title       *string
	Company     *string
	Location    *string
	Description *string
}

func (s *JobService) Update(ctx context.Context, id common.UUID, update JobUpdate) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, common.NewValidationError("invalid job", map[string]string{"title": "title must not be empty"})
		}
		current.Title = *update.Title
	}
	if update.Company != nil {
		current.Company = *update.Company
	}
	if update.Location != nil {
		current.Location = *update.Location
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", Payload: map[string]string{"job_id": updated.ID.String()}})
	return updated, nil
}

// Delete removes the job, then every application referencing it. The two
// steps are not atomic: a cascade failure after the job row is gone leaves
// orphaned applications, surfaced as an error and visible on later listings.
func (s *JobService) Delete(ctx context.Context, id common.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	removed, err := s.applications.DeleteByJob(ctx, id)
	if err != nil {
		s.logger.Error("cascade delete of applications failed",
			zap.String("job_id", id.String()), zap.Error(err))
		return common.NewError(common.CodeInternal, "failed to delete related applications", err)
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", Payload: map[string]string{
		"job_id":               id.String(),
		"applications_removed": strconv.FormatInt(removed, 10),
	}})
	return nil
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) List(ctx context.Context) ([]job.Job, error) {
	return s.repo.List(ctx)
}
