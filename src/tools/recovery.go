package tools

import (
	"runtime/debug"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recover is gin middleware that logs handler panics with a stack trace
// and turns them into a 500.
func Recover(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Error("Recovered from panic",
				zap.Any("panic", r),
				log.Any("stack", string(debug.Stack())))
			c.AbortWithStatus(500)
		}
	}()
	c.Next()
}
