package devtools

import "errors"

var (
	ErrNotFound      = errors.New("patch not found")
	ErrInvalidFormat = errors.New("invalid patch format")
	ErrConflict      = errors.New("conflict")
	ErrFileError     = errors.New("file error")
	ErrParseError    = errors.New("parse error")
)
