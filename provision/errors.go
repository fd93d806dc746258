package provision

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// ErrNameRequired is used when a stream name is required but not provided.
var ErrNameRequired = NewValidationError("stream name is required")

// ErrShardCountInvalid is used when the requested shard count is below one.
var ErrShardCountInvalid = NewValidationError("shard count must be at least 1")

type validationError struct {
	err string
}

func (e *validationError) Error() string {
	return e.err
}

// NewValidationError creates a new validation error.
func NewValidationError(err string) error {
	return &validationError{err: err}
}

func IsValidationError(err error) bool {
	_, ok := err.(*validationError)
	return ok
}

// InvalidStateError is used when the service reports a lifecycle state this
// library does not know how to act on. Acting on an unknown state could
// corrupt intent, so it is treated as fatal rather than ignored.
type InvalidStateError struct {
	Stream string
	Status types.StreamStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("stream %s is in an unsupported state: %s", e.Stream, e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	_, ok := target.(*InvalidStateError)
	return ok
}

// DeleteTimeoutError is used when a stream that was being deleted still
// exists after the deadline, blocking its recreation.
type DeleteTimeoutError struct {
	Stream  string
	Timeout time.Duration
}

func (e *DeleteTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for stream %s to delete after %s", e.Stream, e.Timeout)
}

func (e *DeleteTimeoutError) Is(target error) bool {
	_, ok := target.(*DeleteTimeoutError)
	return ok
}

// ActivationTimeoutError is used when a stream did not become active before
// the deadline.
type ActivationTimeoutError struct {
	Stream  string
	Timeout time.Duration
}

func (e *ActivationTimeoutError) Error() string {
	return fmt.Sprintf("stream %s did not become active within %s", e.Stream, e.Timeout)
}

func (e *ActivationTimeoutError) Is(target error) bool {
	_, ok := target.(*ActivationTimeoutError)
	return ok
}

// LookupError is used when the state of a stream could not be determined at
// a point where a definitive answer is required to pick the next action.
// Lookup failures during a wait are tolerated and never produce this error.
type LookupError struct {
	Stream string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("state of stream %s could not be determined: %v", e.Stream, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	_, ok := target.(*LookupError)
	return ok
}
