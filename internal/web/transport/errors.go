package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// APIError describes the failure to the client. Kind is "network",
// "extraction" or "request".
type APIError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// SendError aborts with httpStatus and a JSON error body.
func SendError(c *gin.Context, httpStatus int, kind, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    httpStatus,
			Kind:    kind,
			Message: message,
		},
	})
}

// BadRequest sends a 400.
func BadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, "request", message)
}

// NotFound sends a 404.
func NotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "request", message)
}

// BadGateway sends a 502 for pages that could not be retrieved.
func BadGateway(c *gin.Context, message string) {
	SendError(c, http.StatusBadGateway, "network", message)
}

// UnprocessableEntity sends a 422 for pages that could not be processed.
func UnprocessableEntity(c *gin.Context, message string) {
	SendError(c, http.StatusUnprocessableEntity, "extraction", message)
}

// InternalServerError sends a 500.
func InternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, "internal", message)
}
