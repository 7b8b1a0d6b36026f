package gcloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownCode is the code carried by errors classified from failures that did
// not include a structured service payload, such as connection resets or
// timeouts raised below the HTTP layer.
const UnknownCode = 0

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrNoMoreItems         = errors.New("no more items")
	ErrBatchTooLarge       = errors.New("batch exceeds the service maximum")
	ErrDuplicateWaitOption = errors.New("duplicate wait option")
	ErrJobFailed           = errors.New("job completed with an error")
)

// Error is a classified service failure. It carries the HTTP-like status code
// returned by the service, a retryability verdict, and the idempotency of the
// attempted operation as declared by its caller. An Error is immutable once
// constructed.
type Error struct {
	Code    int    `json:"code"             yaml:"code"`
	Message string `json:"message"          yaml:"message"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`

	retryable  bool
	idempotent bool
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (code: %d)", e.Reason, e.Message, e.Code)
	}

	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// Retryable reports whether re-attempting the failed call may succeed.
func (e *Error) Retryable() bool {
	return e.retryable
}

// Idempotent reports whether the failed operation was declared idempotent by
// its caller.
func (e *Error) Idempotent() bool {
	return e.idempotent
}

// Unwrap returns the underlying transport failure, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// ErrorDetail is one entry of a structured error payload.
type ErrorDetail struct {
	Reason  string `json:"reason,omitempty"  yaml:"reason,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ErrorResponse is the structured error body returned by the service.
type ErrorResponse struct {
	Code    int           `json:"code"             yaml:"code"`
	Message string        `json:"message"          yaml:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Error implements the error interface for ErrorResponse.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// FirstDetail returns the first error detail or nil.
func (e *ErrorResponse) FirstDetail() *ErrorDetail {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseErrorResponse parses a structured error body. The service wraps the
// payload in an "error" envelope; a bare payload is accepted too.
func ParseErrorResponse(data []byte) (*ErrorResponse, error) {
	var envelope struct {
		Error *ErrorResponse `json:"error"`
	}

	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != nil {
		return envelope.Error, nil
	}

	var errResp ErrorResponse

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &errResp, nil
}

// defaultRetryableCodes is the retryable set applied when a Classifier is
// built without an override.
var defaultRetryableCodes = []int{
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Classifier maps raw transport failures into *Error values. The zero value
// is not usable; use NewClassifier or the package-level Classify.
type Classifier struct {
	retryable map[int]bool
}

// NewClassifier creates a classifier with the given retryable status codes.
// With no codes, the default set {500, 502, 503, 504} applies.
func NewClassifier(codes ...int) *Classifier {
	if len(codes) == 0 {
		codes = defaultRetryableCodes
	}

	retryable := make(map[int]bool, len(codes))
	for _, code := range codes {
		retryable[code] = true
	}

	return &Classifier{retryable: retryable}
}

var defaultClassifier = NewClassifier()

// Classify translates a raw failure into an *Error using the default
// retryable set. See Classifier.Classify.
func Classify(err error, idempotent bool) *Error {
	return defaultClassifier.Classify(err, idempotent)
}

// Classify translates a raw failure into an *Error. A structured service
// error keeps its code and message verbatim and is retryable when its code is
// in the classifier's retryable set. An opaque failure gets UnknownCode and
// is retryable only when the caller declared the attempted operation
// idempotent: replaying a non-idempotent call after an ambiguous failure
// could apply it twice.
//
// Classification is pure: the same input always yields an equal *Error, and
// the original failure is preserved as the cause.
func (c *Classifier) Classify(err error, idempotent bool) *Error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var errResp *ErrorResponse
	if errors.As(err, &errResp) {
		classified := &Error{
			Code:       errResp.Code,
			Message:    errResp.Message,
			retryable:  c.retryable[errResp.Code],
			idempotent: idempotent,
			cause:      err,
		}
		if detail := errResp.FirstDetail(); detail != nil {
			classified.Reason = detail.Reason
		}

		return classified
	}

	return &Error{
		Code:       UnknownCode,
		Message:    err.Error(),
		retryable:  idempotent,
		idempotent: idempotent,
		cause:      err,
	}
}

// IsNotFound checks if the error reports a missing resource.
func IsNotFound(err error) bool {
	return errorCode(err) == http.StatusNotFound
}

// IsPreconditionFailed checks if the error reports a failed generation or
// etag precondition. Precondition mismatches are never retryable.
func IsPreconditionFailed(err error) bool {
	return errorCode(err) == http.StatusPreconditionFailed
}

// IsRetryable checks if the error has been classified as retryable.
func IsRetryable(err error) bool {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Retryable() && svcErr.Code != http.StatusPreconditionFailed
	}

	return false
}

func errorCode(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}

	var errResp *ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Code
	}

	return -1
}
