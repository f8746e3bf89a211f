package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	var resumeFileID any
	if app.ResumeFileID != "" {
		resumeFileID = app.ResumeFileID
	}
	var resumeURL any
	if app.ResumeURL != "" {
		resumeURL = app.ResumeURL
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, name, email, resume_file_id, resume_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.JobID, app.Name, app.Email, resumeFileID, resumeURL, app.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, job_id, name, email, resume_file_id, resume_url, created_at FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "Application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

// List eagerly joins the referenced job so a consumer can render both without
// a second round trip. A dangling job_id yields the unknown-job placeholder.
func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.name, a.email, a.resume_file_id, a.resume_url, a.created_at,
			j.id, j.title, j.company, j.location, j.description, j.created_at
		FROM applications a
		LEFT JOIN jobs j ON j.id = a.job_id
		ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		var resumeFileID, resumeURL sql.NullString
		var jobID, title, company, location, description sql.NullString
		var jobCreatedAt sql.NullTime
		if err := rows.Scan(&app.ID, &app.JobID, &app.Name, &app.Email, &resumeFileID, &resumeURL, &app.CreatedAt,
			&jobID, &title, &company, &location, &description, &jobCreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		app.ResumeFileID = common.UUID(resumeFileID.String)
		app.ResumeURL = resumeURL.String
		if jobID.Valid {
			app.Job = &job.Job{
				ID:          common.UUID(jobID.String),
				Title:       title.String,
				Company:     company.String,
				Location:    location.String,
				Description: description.String,
				CreatedAt:   jobCreatedAt.Time,
			}
		} else {
			app.Job = application.PlaceholderJob(app.JobID)
		}
		items = append(items, app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, job_id, name, email, resume_file_id, resume_url, created_at
		FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "Application not found", nil)
	}
	return nil
}

func (r *ApplicationRepository) DeleteByJob(ctx context.Context, jobID common.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to delete applications", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to delete applications", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var resumeFileID, resumeURL sql.NullString
	if err := row.Scan(&app.ID, &app.JobID, &app.Name, &app.Email, &resumeFileID, &resumeURL, &app.CreatedAt); err != nil {
		return nil, err
	}
	app.ResumeFileID = common.UUID(resumeFileID.String)
	app.ResumeURL = resumeURL.String
	return &app, nil
}
