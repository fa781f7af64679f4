package http

import (
	"errors"
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail writes err as an Error body. A partial completion is checked before the
// remote errors it wraps so the order id always reaches the operator.
func (s *Server) fail(c echo.Context, err error) error {
	var (
		partial    *errs.PartialCompletionError
		validation *errs.RemoteValidationError
		remote     *errs.RemoteOperationError
	)

	switch {
	case errors.As(err, &partial):
		return c.JSON(http.StatusConflict, Error{
			Code:         http.StatusConflict,
			Message:      "Order was created but not confirmed, retry the confirmation",
			OrderID:      partial.OrderID,
			TrackingCode: partial.TrackingCode,
		})
	case errors.Is(err, errs.ErrOperationInFlight):
		return c.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Another operation is already in progress",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &validation):
		msg := validation.Message
		if msg == "" {
			msg = errs.DefaultRemoteMessage
		}
		return c.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: msg,
			Errors:  validation.Fields,
			Details: validation.Details(),
		})
	case errors.As(err, &remote):
		s.logger.WarnContext(c.Request().Context(), "Order desk call failed", "operation", remote.Operation, "error", err)
		return c.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: remote.SafeMessage(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errs.IsValidation(err), errors.Is(err, commands.ErrSessionIsRequired):
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: msg,
	})
}
