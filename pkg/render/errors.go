package render

import "errors"

var (
	// ErrMissingTemplate is returned when the template file cannot be read.
	ErrMissingTemplate = errors.New("template not readable")

	// ErrUnwritableOutput is returned when the output file cannot be written.
	ErrUnwritableOutput = errors.New("output not writable")
)
