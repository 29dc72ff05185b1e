package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/pkg/apperror"
)

// Recovery turns a panic into an Internal error rendered by ErrorHandler.
// It must run after ErrorHandler in the chain.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abortWith(c, apperror.Internal(fmt.Errorf("panic: %v", recovered)))
	})
}
