package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 1
)

// Page is an offset/limit window over rows ordered by id.
type Page struct {
	Offset int
	Limit  int
}

// NewPage checks offset >= 0 and limit >= 1.
func NewPage(offset, limit int) (Page, error) {
	var failures []error
	if offset < 0 {
		failures = append(failures, errs.NewValueIsOutOfRangeError("offset", offset, 0, "max int"))
	}
	if limit < 1 {
		failures = append(failures, errs.NewValueIsOutOfRangeError("limit", limit, 1, "max int"))
	}
	if len(failures) > 0 {
		return Page{}, errors.Join(failures...)
	}

	return Page{Offset: offset, Limit: limit}, nil
}
