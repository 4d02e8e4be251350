package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/fitai/fitai-api/pkg/errors"
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

// bindError maps a failed profile decode to a 400 response.
func bindError(err error) *HTTPError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return NewHTTPError(http.StatusBadRequest, "request_too_large", fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), err)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "invalid profile: "+describeViolations(verrs), err)
	}
	return NewHTTPError(http.StatusBadRequest, "invalid_request", "request body must be a JSON object: "+errMessage(err), err)
}

func describeViolations(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s fails %s", fe.Field(), rule))
	}
	return strings.Join(parts, "; ")
}

// domainError maps taxonomy codes to HTTP statuses. Everything that is not the caller's fault is a 500.
func domainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case "":
		code = "internal_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
