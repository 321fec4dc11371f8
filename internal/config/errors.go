package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is() by callers that want to react to a specific problem.
var (
	// ErrNoRoot is returned when no directory to scan is specified.
	ErrNoRoot = errors.New("no root specified: provide a directory to extract coordinates from")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrUnknownFormat is returned when the export format is not one of
	// csv, json or markdown.
	ErrUnknownFormat = errors.New("unknown format: must be csv, json or markdown")

	// ErrUnknownLogFormat is returned when the log format is not text or json.
	ErrUnknownLogFormat = errors.New("unknown log format: must be text or json")

	// ErrEmptyOutput is returned when the output file path is empty.
	ErrEmptyOutput = errors.New("empty output file path")

	// ErrNoExtensions is returned when the extension list is present but
	// contains no usable entries.
	ErrNoExtensions = errors.New("no image extensions configured")
)
