package common

import (
	"strings"

	"github.com/google/uuid"
)

// UUID is the identifier type shared by every collection, stored in its
// canonical string form.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", NewError(CodeValidation, "invalid id", err)
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}
