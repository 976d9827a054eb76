package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string, detail interface{}) {
	c.JSON(statusCode, ErrorResponse{
		Status:  "error",
		Message: message,
		Detail:  detail,
	})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string, detail interface{}) {
	Error(c, http.StatusBadRequest, message, detail)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string, detail interface{}) {
	Error(c, http.StatusInternalServerError, message, detail)
}

// AppErrorResponse maps an AppError to its HTTP response, falling back to a
// generic 500 for anything that is not an AppError.
func AppErrorResponse(c *gin.Context, err error, fallback string) {
	if appErr := GetAppError(err); appErr != nil {
		Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	InternalServerError(c, fallback, err.Error())
}
