package service

import "errors"

var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrDuplicateProblem = errors.New("an entry with this problem already exists")
	ErrStorageCorrupt   = errors.New("stored document is corrupt")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("invalid format, use YYYY-MM")
	ErrInvalidTitle     = errors.New("invalid note title")
)
