// Package errs provides the error taxonomy of the parcel service.
//
// Local validation errors are field-scoped and never reach the network:
//   - ValueIsRequiredError
//   - ValueIsInvalidError
//   - ValueIsOutOfRangeError
//
// Lookup failures use ObjectNotFoundError.
//
// Errors raised around the remote order desk and the shipment state machine:
//   - RemoteValidationError: quote/create rejected the request, with an optional per-field map
//   - RemoteOperationError: create/confirm/status-update failed, with a safe fallback message
//   - InvalidTransitionError: a step was attempted with an unsatisfied gate or from a terminal status
//   - PartialCompletionError: create succeeded but confirm failed; carries the order id and tracking code
//
// Each error type follows the same pattern: a sentinel error variable, a struct
// with the error details, constructors with and without cause, Error() and Unwrap().
package errs
