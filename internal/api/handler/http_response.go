package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	response := NewErrorResponse(code, message)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondNoContent sends a 204 No Content response
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondForbidden sends a 403 Forbidden response with an error
func RespondForbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}
	RespondWithError(c, http.StatusForbidden, "FORBIDDEN", message)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}

// RespondDomainError maps a lifecycle error onto its HTTP status:
// validation failures are 400, missing entities 404, authorization
// failures 403, and both failed preconditions and concurrent
// modifications 409 with distinct codes.
func RespondDomainError(c *gin.Context, err error) {
	var validationErr shared.ValidationError
	if errors.As(err, &validationErr) {
		RespondWithError(c, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
		return
	}

	var notFoundErr shared.NotFoundError
	if errors.As(err, &notFoundErr) {
		RespondWithError(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error())
		return
	}

	var preconditionErr shared.PreconditionError
	if errors.As(err, &preconditionErr) {
		RespondWithError(c, http.StatusConflict, "FAILED_PRECONDITION", preconditionErr.Error())
		return
	}

	var conflictErr shared.ConflictError
	if errors.As(err, &conflictErr) {
		RespondWithError(c, http.StatusConflict, "CONFLICT", conflictErr.Error())
		return
	}

	var authorizationErr shared.AuthorizationError
	if errors.As(err, &authorizationErr) {
		RespondWithError(c, http.StatusForbidden, "FORBIDDEN", authorizationErr.Error())
		return
	}

	RespondInternalError(c)
}
