package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. negative miles, malformed clock time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedPayload is returned by the backup codec when a restore payload
// is not parseable JSON. Handlers should map this to HTTP 400.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrInvalidBackupFormat is returned by the backup codec when a restore
// payload parses but is missing one of the required collections.
// Handlers should map this to HTTP 422.
var ErrInvalidBackupFormat = errors.New("invalid backup format")
