package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"jobboard/internal/common"
)

const maxJSONBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBytes)).Decode(v); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath parses the path segment at index (zero-based, leading slash
// stripped) as an id, e.g. index 1 for /jobs/{id}.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return "", common.NewError(common.CodeValidation, "missing id", nil)
	}
	return common.ParseUUID(parts[index])
}
