package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/pkg/httputil"
	"github.com/mobimama/mobimama-api/pkg/logger"
)

// Recovery converts panics into a 500 envelope instead of a dropped
// connection.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(fmt.Errorf("%v", r), "panic recovered", map[string]interface{}{
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(ContextRequestID),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
					Success: false,
					Error: &httputil.Error{
						Code:    http.StatusInternalServerError,
						Message: "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
