package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery middleware recovers from panics and returns a 500 error
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(map[string]interface{}{
					"request_id": c.GetString(ContextRequestIDKey),
					"path":       c.Request.URL.Path,
					"stack":      string(debug.Stack()),
				}).Error("Panic recovered", fmt.Errorf("%v", err))

				util.AbortWithCustomError(c, http.StatusInternalServerError,
					util.ErrCodeInternal, "Internal server error")
			}
		}()

		c.Next()
	}
}
