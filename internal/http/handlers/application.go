package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
	applyLimit   int
	applyWindow  time.Duration
	maxUpload    int64
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter, applyLimit int, applyWindow time.Duration, maxUpload int64) *ApplicationHandler {
	if applyLimit <= 0 {
		applyLimit = 5
	}
	if applyWindow <= 0 {
		applyWindow = time.Minute
	}
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &ApplicationHandler{
		applications: applications,
		limiter:      limiter,
		applyLimit:   applyLimit,
		applyWindow:  applyWindow,
		maxUpload:    maxUpload,
	}
}

// Apply handles the multipart submission: fields name, email, plus either a
// "resume" file part or a "resumeUrl" field.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, h.applyLimit, h.applyWindow) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	if err := r.ParseMultipartForm(h.maxUpload + maxJSONBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}

	input := app.ResumeInput{}
	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		content, readErr := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
		if readErr != nil {
			response.Error(w, common.NewError(common.CodeInternal, "failed to read resume", readErr))
			return
		}
		input = app.ResumeInput{
			Kind:        app.ResumeKindFile,
			Content:     content,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		if url := r.FormValue("resumeUrl"); url != "" {
			input = app.ResumeInput{Kind: app.ResumeKindURL, URL: url}
		}
	default:
		response.Error(w, common.NewError(common.CodeValidation, "invalid resume upload", err))
		return
	}

	created, err := h.applications.Submit(r.Context(), jobID, r.FormValue("name"), r.FormValue("email"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]any{
		"message":     "Application saved",
		"application": created,
	})
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.applications.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Application{}
	}
	response.JSON(w, http.StatusOK, items)
}
