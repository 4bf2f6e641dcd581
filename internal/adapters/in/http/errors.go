package http

import (
	"errors"
	"fmt"
	"net/http"

	"deliverytracker/internal/core/application/identity"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every error response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "status", status, "error", err)
	}
	if status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, Error{Code: status, Message: message})
	}
	if writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "error response not written", "error", writeErr)
	}
}

// classify maps an error to its status code and client-facing message.
// Retryable store failures are checked first because they wrap the store error.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	switch {
	case errors.Is(err, errs.ErrRetryableStoreFailure):
		return http.StatusServiceUnavailable, "the change could not be stored, retry the request"

	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "incorrect email or password"
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, "could not validate credentials"

	case errors.Is(err, services.ErrSelfDemotion):
		return http.StatusForbidden, "admins cannot remove their own admin role"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "not enough permissions"

	case errors.Is(err, errs.ErrObjectNotFound):
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) && notFound.ParamName != "" {
			return http.StatusNotFound, notFound.ParamName + " not found"
		}
		return http.StatusNotFound, "not found"

	case errors.Is(err, errs.ErrAlreadyExists):
		var exists *errs.AlreadyExistsError
		if errors.As(err, &exists) && exists.ParamName == "email" {
			return http.StatusBadRequest, "email already registered"
		}
		return http.StatusBadRequest, "already exists"

	case errors.Is(err, kernel.ErrInvalidPostalCode):
		var invalid *kernel.InvalidPostalCodeError
		if errors.As(err, &invalid) && invalid.Value != "" {
			return http.StatusBadRequest, fmt.Sprintf("invalid postal code: %s", invalid.Value)
		}
		return http.StatusBadRequest, "invalid postal code"

	case errors.Is(err, order.ErrTerminalStateViolation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}
