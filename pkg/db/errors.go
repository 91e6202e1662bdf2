package db

import (
	"strings"

	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
)

// IsUniqueViolation reports whether err is a unique constraint failure from
// either postgres or sqlite. When constraintName is set, the helper looks for
// that name in the message instead.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	return pkgerrors.Dump(err).UniqueViolation()
}
