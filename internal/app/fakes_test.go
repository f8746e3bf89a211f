package app

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/resume"
)

type fakeJobRepo struct {
	mu    sync.Mutex
	items map[common.UUID]job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{items: make(map[common.UUID]job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.CreatedAt = time.Now().UTC()
	r.items[j.ID] = j
	return &j, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[j.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Job not found", nil)
	}
	j.CreatedAt = current.CreatedAt
	r.items[j.ID] = j
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Job not found", nil)
	}
	return &j, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.items))
	for _, j := range r.items {
		items = append(items, j)
	}
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.After(items[k].CreatedAt) })
	return items, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "Job not found", nil)
	}
	delete(r.items, id)
	return nil
}

type fakeApplicationRepo struct {
	mu            sync.Mutex
	items         map[common.UUID]application.Application
	jobs          *fakeJobRepo
	failCreate    bool
	failDeleteAll bool
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{items: make(map[common.UUID]application.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return nil, common.NewError(common.CodeInternal, "failed to create application", nil)
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	r.items[app.ID] = app
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Application not found", nil)
	}
	return &app, nil
}

func (r *fakeApplicationRepo) List(ctx context.Context) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0, len(r.items))
	for _, app := range r.items {
		if r.jobs != nil {
			if j, err := r.jobs.GetByID(ctx, app.JobID); err == nil {
				app.Job = j
			} else {
				app.Job = application.PlaceholderJob(app.JobID)
			}
		}
		items = append(items, app)
	}
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.After(items[k].CreatedAt) })
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.items {
		if app.JobID == jobID {
			items = append(items, app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "Application not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeApplicationRepo) DeleteByJob(ctx context.Context, jobID common.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDeleteAll {
		return 0, common.NewError(common.CodeInternal, "failed to delete applications", nil)
	}
	var removed int64
	for id, app := range r.items {
		if app.JobID == jobID {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

type fakeBlob struct {
	content     []byte
	filename    string
	contentType string
}

type fakeResumeStore struct {
	mu        sync.Mutex
	blobs     map[common.UUID]fakeBlob
	failStore bool
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{blobs: make(map[common.UUID]fakeBlob)}
}

func (s *fakeResumeStore) Store(ctx context.Context, r io.Reader, filename, contentType string) (common.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failStore {
		return "", common.NewError(common.CodeInternal, "failed to store resume", nil)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to read resume", err)
	}
	id := common.NewUUID()
	s.blobs[id] = fakeBlob{content: content, filename: filename, contentType: contentType}
	return id, nil
}

func (s *fakeResumeStore) Retrieve(ctx context.Context, id common.UUID) (*resume.File, io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[id]
	if !ok {
		return nil, nil, common.NewError(common.CodeNotFound, "File not found", nil)
	}
	meta := &resume.File{
		ID:          id,
		Filename:    blob.filename,
		ContentType: blob.contentType,
		Length:      int64(len(blob.content)),
		CreatedAt:   time.Now().UTC(),
	}
	return meta, io.NopCloser(bytes.NewReader(blob.content)), nil
}

func (s *fakeResumeStore) Delete(ctx context.Context, id common.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return common.NewError(common.CodeNotFound, "File not found", nil)
	}
	delete(s.blobs, id)
	return nil
}

type fakeAnalytics struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *fakeAnalytics) Create(ctx context.Context, event analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *fakeAnalytics) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.Name)
	}
	return names
}
