package util

import (
	"errors"
	"lingua_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Kind    ErrorKind   `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: message,
		Kind:    KindInvalidInput,
	})
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func statusOf(kind ErrorKind) int {
	switch kind {
	case KindReferenceNotFound:
		return http.StatusNotFound
	case KindPrecursorMissing:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

// HandleError 把服务层错误映射成 HTTP 响应；临时失败只记录日志，不把底层原因返回给客户端
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindTransientStoreFailure, Message: "store unavailable", Err: err}
	}

	code := statusOf(appErr.Kind)
	if appErr.Kind == KindTransientStoreFailure {
		logger.Log.Error("Transient store failure",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	message := appErr.Message
	if message == "" {
		message = string(appErr.Kind)
	}

	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Kind:    appErr.Kind,
	})
}
