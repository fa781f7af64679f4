package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRemoteValidation  = errors.New("remote validation failed")
	ErrRemoteOperation   = errors.New("remote operation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPartialCompletion = errors.New("order created but not confirmed")

	// ErrOperationInFlight is returned when a mutating call arrives while
	// another one for the same flow or shipment is still running. The later
	// call is dropped, not queued.
	ErrOperationInFlight = errors.New("operation already in flight")
)

// DefaultRemoteMessage is shown to operators when the remote side failed
// without saying why.
const DefaultRemoteMessage = "The request could not be completed. Please try again."

// RemoteValidationError carries a rejection from quote or create. Fields maps
// a request field to the remote's message about it.
type RemoteValidationError struct {
	Operation string
	Message   string
	Fields    map[string]string
}

func NewRemoteValidationError(operation, message string, fields map[string]string) *RemoteValidationError {
	return &RemoteValidationError{
		Operation: operation,
		Message:   message,
		Fields:    fields,
	}
}

// Details renders the per-field map as "field: message" pairs ordered by field.
func (e *RemoteValidationError) Details() string {
	if len(e.Fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(pairs, "; ")
}

func (e *RemoteValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteValidation, e.Operation)
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if details := e.Details(); details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, details)
	}
	return msg
}

func (e *RemoteValidationError) Unwrap() error {
	return ErrRemoteValidation
}

// RemoteOperationError is a generic create/confirm/status-update failure.
type RemoteOperationError struct {
	Operation string
	Message   string
	Cause     error
}

func NewRemoteOperationError(operation, message string) *RemoteOperationError {
	return &RemoteOperationError{
		Operation: operation,
		Message:   message,
	}
}

func NewRemoteOperationErrorWithCause(operation, message string, cause error) *RemoteOperationError {
	return &RemoteOperationError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// SafeMessage returns the remote message, or DefaultRemoteMessage when the
// remote provided none.
func (e *RemoteOperationError) SafeMessage() string {
	if strings.TrimSpace(e.Message) == "" {
		return DefaultRemoteMessage
	}
	return e.Message
}

func (e *RemoteOperationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrRemoteOperation, e.Operation, e.SafeMessage())
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *RemoteOperationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRemoteOperation, e.Cause}
	}
	return []error{ErrRemoteOperation}
}

// InvalidTransitionError is returned when a step is attempted from a status
// that does not admit it, from a terminal status, or with an unsatisfied gate.
type InvalidTransitionError struct {
	From   string
	Step   string
	Reason string
}

func NewInvalidTransitionError(from, step, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:   from,
		Step:   step,
		Reason: reason,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s from %s: %s", ErrInvalidTransition, e.Step, e.From, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PartialCompletionError means create succeeded and confirm failed. The order
// exists unconfirmed; confirmation must be retried for OrderID, never re-created.
type PartialCompletionError struct {
	OrderID      string
	TrackingCode string
	Cause        error
}

func NewPartialCompletionError(orderID, trackingCode string, cause error) *PartialCompletionError {
	return &PartialCompletionError{
		OrderID:      orderID,
		TrackingCode: trackingCode,
		Cause:        cause,
	}
}

func (e *PartialCompletionError) Error() string {
	msg := fmt.Sprintf("%s: order %s (tracking %s)", ErrPartialCompletion, e.OrderID, e.TrackingCode)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PartialCompletionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPartialCompletion, e.Cause}
	}
	return []error{ErrPartialCompletion}
}
