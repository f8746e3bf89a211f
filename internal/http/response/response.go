package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobboard/internal/common"
)

type Collector interface {
	IncErrors()
}

var errorCollector Collector

func SetErrorCollector(c Collector) {
	errorCollector = c
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Error maps a coded error to its status and a structured JSON body. Anything
// unrecognized becomes a generic 500; underlying causes are never sent to the
// caller.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: "internal error"}
	var appErr *common.Error
	if errors.As(err, &appErr) {
		status = statusForCode(appErr.Code)
		body.Error = appErr.Message
		body.Details = appErr.Fields
	}
	if errorCollector != nil {
		errorCollector.IncErrors()
	}
	JSON(w, status, body)
}

func statusForCode(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
