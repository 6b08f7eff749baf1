package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps application error codes onto HTTP statuses.
func fromDomainError(err error, fallbackCode string) *HTTPError {
	status, code := http.StatusInternalServerError, fallbackCode
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status, code = http.StatusBadRequest, "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeNoData):
		status, code = http.StatusNotFound, apperrors.CodeNoData
	case apperrors.IsCode(err, apperrors.CodeUnauthorized):
		status, code = http.StatusUnauthorized, apperrors.CodeUnauthorized
	case apperrors.IsCode(err, apperrors.CodeInvalidToken):
		status, code = http.StatusForbidden, apperrors.CodeInvalidToken
	case apperrors.IsCode(err, apperrors.CodeStore):
		status, code = http.StatusServiceUnavailable, "store_unavailable"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
