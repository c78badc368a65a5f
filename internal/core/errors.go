package core

import (
	"errors"
	"fmt"
)

// FailureKind classifies a pipeline-level failure.
type FailureKind string

const (
	UpstreamTimeout     FailureKind = "upstream_timeout"
	UpstreamUnavailable FailureKind = "upstream_unavailable"
	UpstreamMalformed   FailureKind = "upstream_malformed"
	PermissionDenied    FailureKind = "permission_denied"
)

// Failure is a typed failure surfaced to the render boundary. Retryable
// marks transient conditions worth a user-driven retry; retries are a
// caller concern, never automatic inside the pipeline.
type Failure struct {
	Kind      FailureKind
	Reason    string
	Retryable bool
	Err       error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Reason, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure creates a Failure of the given kind wrapping err. Timeouts
// and unavailability are retryable; malformed payloads and permission
// denials are not.
func NewFailure(kind FailureKind, reason string, err error) *Failure {
	return &Failure{
		Kind:      kind,
		Reason:    reason,
		Retryable: kind == UpstreamTimeout || kind == UpstreamUnavailable,
		Err:       err,
	}
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
