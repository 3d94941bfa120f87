package easel

import "errors"

// Sentinel errors shared by the easel packages. Callers match them with
// errors.Is; wrapped errors carry the detail.
var (
	// ErrAborted reports cooperative cancellation of loading or enlivening.
	// Errors carrying it also match the causing context error.
	ErrAborted = errors.New("easel: aborted")

	// ErrAlreadyInitialized reports a second driver claiming a surface.
	ErrAlreadyInitialized = errors.New("easel: surface already initialized")

	// ErrImageLoad reports an image that could not be fetched or decoded.
	ErrImageLoad = errors.New("easel: image load failed")

	// ErrUnknownType reports a serialized type with no registered constructor.
	ErrUnknownType = errors.New("easel: unknown object type")
)

// Aborted wraps cause so the result matches both ErrAborted and cause.
func Aborted(cause error) error {
	if cause == nil {
		return ErrAborted
	}
	return errors.Join(ErrAborted, cause)
}
