package http

import (
	"errors"
	"net/http"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/queries"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
)

// API error codes returned in the response body.
const (
	codeAuthenticationError   = "authentication_error"
	codeValidationError       = "validation_error"
	codeResourceMissing       = "resource_missing"
	codePermissionDenied      = "permission_denied"
	codeModificationForbidden = "modification_forbidden"
	codeActionForbidden       = "action_forbidden"
	codeNoChanges             = "no_changes"
	codeConflict              = "conflict"
	codeAPIError              = "api_error"
	codeServerError           = "server_error"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Error apiError `json:"error"`
}

func newErrorBody(code, message string) errorBody {
	return errorBody{Error: apiError{Code: code, Message: message}}
}

// mapError translates domain and application errors into the API's status
// and code vocabulary. Unrecognized errors become opaque 500s so internals
// never leak to integrators.
func mapError(err error) (int, errorBody) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, newErrorBody(codeResourceMissing, "Order not found")

	case errors.Is(err, commands.ErrOrderNotOwned), errors.Is(err, queries.ErrOrderNotOwned):
		return http.StatusForbidden, newErrorBody(codePermissionDenied,
			"You do not have permission to access this resource.")

	case errors.Is(err, order.ErrOrderInProgress):
		return http.StatusBadRequest, newErrorBody(codeActionForbidden,
			"Cannot cancel an order that is already in progress.")

	case errors.Is(err, order.ErrModificationForbidden):
		return http.StatusBadRequest, newErrorBody(codeModificationForbidden, err.Error())

	case errors.Is(err, order.ErrNoChanges):
		return http.StatusBadRequest, newErrorBody(codeNoChanges, "No valid fields provided.")

	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict, newErrorBody(codeConflict,
			"The order was modified concurrently. Fetch the latest version and retry.")

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, order.ErrInvalidStatusTransition):
		return http.StatusBadRequest, newErrorBody(codeValidationError, err.Error())

	default:
		return http.StatusInternalServerError, newErrorBody(codeServerError, "")
	}
}
