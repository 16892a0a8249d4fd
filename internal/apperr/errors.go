package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrBackend       = errors.New("backend error")
	ErrDuplicateName = errors.New("duplicate tool name")
)
