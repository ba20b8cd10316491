package fs

import "errors"

var (
	// ErrTargetExists is returned when a move would overwrite a file
	ErrTargetExists = errors.New("target already exists")
)
