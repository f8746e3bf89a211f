package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/resume"
)

const PDFContentType = "application/pdf"

type ResumeKind string

const (
	ResumeKindNone ResumeKind = ""
	ResumeKindFile ResumeKind = "file"
	ResumeKindURL  ResumeKind = "url"
)

// ResumeInput is the tagged choice between an uploaded file and an external
// URL. The submission service sets exactly one of resume_file_id/resume_url
// from it.
type ResumeInput struct {
	Kind        ResumeKind
	Content     []byte
	Filename    string
	ContentType string
	URL         string
}

type ApplicationService struct {
	repo           application.Repository
	jobs           job.Repository
	resumes        resume.Store
	analytics      analytics.Repository
	maxResumeBytes int64
}

// NewApplicationService accepts a nil resume store for deployments without
// blob storage; file submissions are then rejected with a validation error.
func NewApplicationService(repo application.Repository, jobs job.Repository, resumes resume.Store, analytics analytics.Repository, maxResumeBytes int64) *ApplicationService {
	if maxResumeBytes <= 0 {
		maxResumeBytes = 5 << 20
	}
	return &ApplicationService{repo: repo, jobs: jobs, resumes: resumes, analytics: analytics, maxResumeBytes: maxResumeBytes}
}

// Submit validates the applicant input, confirms the job still exists, writes
// the resume blob when one was uploaded, and only then persists the
// application record. A blob write failure therefore never leaves a record
// pointing at a missing file; the reverse orphan (blob without record) is
// accepted.
func (s *ApplicationService) Submit(ctx context.Context, jobID common.UUID, name, email string, resumeInput ResumeInput) (*application.Application, error) {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("Name and email are required", fields)
	}

	switch resumeInput.Kind {
	case ResumeKindFile:
		if s.resumes == nil {
			return nil, common.NewError(common.CodeValidation, "resume file uploads are not supported", nil)
		}
		if resumeInput.ContentType != PDFContentType {
			return nil, common.NewError(common.CodeValidation, "Only PDF files are allowed", nil)
		}
		if int64(len(resumeInput.Content)) > s.maxResumeBytes {
			return nil, common.NewError(common.CodeValidation, "resume exceeds the maximum allowed size", nil)
		}
	case ResumeKindURL:
		if strings.TrimSpace(resumeInput.URL) == "" {
			return nil, common.NewError(common.CodeValidation, "Either resume file or resume URL is required", nil)
		}
	default:
		return nil, common.NewError(common.CodeValidation, "Either resume file or resume URL is required", nil)
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	app := application.Application{JobID: jobID, Name: name, Email: email}
	if resumeInput.Kind == ResumeKindFile {
		filename := fmt.Sprintf("%d-resume.pdf", time.Now().UnixMilli())
		fileID, err := s.resumes.Store(ctx, bytes.NewReader(resumeInput.Content), filename, resumeInput.ContentType)
		if err != nil {
			return nil, err
		}
		app.ResumeFileID = fileID
	} else {
		// Stored verbatim, no reachability check.
		app.ResumeURL = resumeInput.URL
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", Payload: map[string]string{
		"application_id": created.ID.String(),
		"job_id":         jobID.String(),
	}})
	return created, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]application.Application, error) {
	return s.repo.List(ctx)
}

func (s *ApplicationService) DownloadResume(ctx context.Context, id common.UUID) (*resume.File, io.ReadCloser, error) {
	if s.resumes == nil {
		return nil, nil, common.NewError(common.CodeNotFound, "File not found", nil)
	}
	return s.resumes.Retrieve(ctx, id)
}

// UploadFile stores an arbitrary file outside the submission flow and returns
// its id. Content type is recorded as supplied.
func (s *ApplicationService) UploadFile(ctx context.Context, content []byte, filename, contentType string) (common.UUID, error) {
	if s.resumes == nil {
		return "", common.NewError(common.CodeValidation, "file uploads are not supported", nil)
	}
	if len(content) == 0 {
		return "", common.NewError(common.CodeValidation, "No file uploaded", nil)
	}
	if int64(len(content)) > s.maxResumeBytes {
		return "", common.NewError(common.CodeValidation, "file exceeds the maximum allowed size", nil)
	}
	return s.resumes.Store(ctx, bytes.NewReader(content), filename, contentType)
}
