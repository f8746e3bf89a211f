package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/http/response"
)

type ResumeHandler struct {
	applications *app.ApplicationService
	maxUpload    int64
}

func NewResumeHandler(applications *app.ApplicationService, maxUpload int64) *ResumeHandler {
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &ResumeHandler{applications: applications, maxUpload: maxUpload}
}

func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	meta, reader, err := h.applications.DownloadResume(r.Context(), fileID)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer reader.Close()

	contentType := meta.ContentType
	if contentType == "" {
		contentType = app.PDFContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Length, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

// Upload stores a file outside the submission flow and returns its id.
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload + maxJSONBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "No file uploaded", err))
		return
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		response.Error(w, common.NewError(common.CodeInternal, "failed to read file", err))
		return
	}
	fileID, err := h.applications.UploadFile(r.Context(), content, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"file_id": fileID,
	})
}
