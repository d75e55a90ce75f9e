package shared

import "errors"

var (

	// common errors
	ErrorNotFound   = errors.New("not found")
	ErrorValidation = errors.New("validation error")

	// document/backup-specific errors
	ErrorNoFilename     = errors.New("no filename")
	ErrorBackupNotFound = errors.New("backup not found")

	// mode-specific errors
	ErrorUnknownMode = errors.New("unknown mode")
)
