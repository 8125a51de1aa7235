package engine

import "errors"

// ReturnCode is the process-exit-code taxonomy for a completed run, written
// into output.json alongside a human-readable message.
type ReturnCode int

const (
	Success           ReturnCode = 0
	UnknownError      ReturnCode = 1
	InvalidInput      ReturnCode = 101
	InvalidModel      ReturnCode = 102
	ErrorInMarginLine ReturnCode = 201
)

var (
	// ErrInvalidInput covers a missing/malformed request, wrong operation
	// type, or a seed that is not a 3-vector.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidModel covers a missing mesh file, unsupported extension,
	// parse failure, or geometry too degenerate to support curvature.
	ErrInvalidModel = errors.New("invalid model")

	// ErrInMargin is reserved for an internal inconsistency raised by the
	// walker; the current algorithm does not abort under normal input.
	ErrInMargin = errors.New("error in margin-line construction")

	// ErrUnknown is the catch-all for unexpected failures.
	ErrUnknown = errors.New("unknown error")
)

// classify maps an error produced anywhere in the pipeline to a ReturnCode
// and message, walking the wrapped chain with errors.Is.
func classify(err error) (ReturnCode, string) {
	if err == nil {
		return Success, "ok"
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return InvalidInput, err.Error()
	case errors.Is(err, ErrInvalidModel):
		return InvalidModel, err.Error()
	case errors.Is(err, ErrInMargin):
		return ErrorInMarginLine, err.Error()
	default:
		return UnknownError, err.Error()
	}
}
