package k8s

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrorKind classifies a cluster operation failure. Every error surfaced by
// the adapter carries exactly one kind.
type ErrorKind string

const (
	// KindNotFound means the target object does not exist.
	KindNotFound ErrorKind = "NotFound"
	// KindAlreadyExists means creation hit an existing object with that name.
	KindAlreadyExists ErrorKind = "AlreadyExists"
	// KindPermissionDenied means the API server rejected the credentials or
	// the service account lacks the verb.
	KindPermissionDenied ErrorKind = "PermissionDenied"
	// KindInvalid means the request payload was rejected by validation.
	KindInvalid ErrorKind = "Invalid"
	// KindTransportError covers server-side and network failures that are
	// likely to succeed on retry.
	KindTransportError ErrorKind = "TransportError"
)

// Error is a classified cluster failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %s: %v", e.Op, e.Name, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches against the kind sentinels so callers can write
// errors.Is(err, k8s.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Name == ""
}

// IsRetryable reports whether the failure is worth retrying as-is.
func (e *Error) IsRetryable() bool {
	return e.Kind == KindTransportError
}

// Kind sentinels for errors.Is matching.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrInvalid          = &Error{Kind: KindInvalid}
	ErrTransport        = &Error{Kind: KindTransportError}
)

// classify wraps err with the operation context and its kind. nil stays nil.
func classify(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kindOf(err), Op: op, Name: name, Err: err}
}

// kindOf maps an API-server or network error onto an ErrorKind. Anything not
// positively identified is treated as a transport failure.
func kindOf(err error) ErrorKind {
	switch {
	case apierrors.IsNotFound(err):
		return KindNotFound
	case apierrors.IsAlreadyExists(err):
		return KindAlreadyExists
	case apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err):
		return KindPermissionDenied
	case apierrors.IsInvalid(err) || apierrors.IsBadRequest(err):
		return KindInvalid
	default:
		return KindTransportError
	}
}

// isTransientAPIError returns true if the error represents a transient API
// failure that is likely to succeed on retry. This includes server-side
// errors (429, 500, 503, 504) and network-level errors.
func isTransientAPIError(err error) bool {
	if apierrors.IsServerTimeout(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsInternalError(err) {
		return true
	}

	// Network-level errors (connection refused, timeout, etc.).
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}
