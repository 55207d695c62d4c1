package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apitypes "github.com/weisyn/taxledger/internal/api/http/types"
)

// ErrorHandler 把处理器挂在 c.Errors 上的错误统一写成 ErrorResponse
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		logger.Error("HTTP error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		WriteError(c, http.StatusInternalServerError, apitypes.ErrInternal, err.Error())
	}
}

// WriteError 写入错误响应并终止处理链
func WriteError(c *gin.Context, status int, code, message string) {
	resp := apitypes.NewErrorResponse(code, message, nil).WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(status, resp)
}
