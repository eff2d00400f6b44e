package models

import "errors"

// Error kinds surfaced at the request boundary. Callers wrap them with
// fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrMissingFile     = errors.New("no file uploaded")
	ErrPayloadTooLarge = errors.New("file too large")
	ErrMalformedInput  = errors.New("malformed input")
	ErrNotFound        = errors.New("not found")
	ErrPersistence     = errors.New("persistence failure")
	ErrProcessing      = errors.New("image processing failed")
)

// ErrorCode returns the wire code for err, or "InternalError" when err
// does not wrap a known kind.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingFile):
		return "MissingFile"
	case errors.Is(err, ErrPayloadTooLarge):
		return "PayloadTooLarge"
	case errors.Is(err, ErrMalformedInput):
		return "MalformedInput"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrPersistence):
		return "PersistenceError"
	case errors.Is(err, ErrProcessing):
		return "ProcessingError"
	default:
		return "InternalError"
	}
}
