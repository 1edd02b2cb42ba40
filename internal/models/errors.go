package models

import "errors"

// Custom errors
var (
	ErrUnknownTeam         = errors.New("unknown team")
	ErrIncompleteSeedTable = errors.New("incomplete seed table")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrNotFound            = errors.New("record not found")
)
