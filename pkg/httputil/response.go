package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/pkg/apperror"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// OK sends a success response
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created sends a resource-created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// Fail sends an error response mapped from the application error taxonomy.
// External errors are masked: the caller-facing message never carries the
// provider failure, only a generic 500 envelope.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	reason := ""

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
		reason = appErr.Reason
		if appErr.Kind != apperror.KindInternal && appErr.Kind != apperror.KindExternal {
			message = appErr.Message
		}
	}

	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
			Reason:  reason,
		},
	})
}
