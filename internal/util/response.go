package util

import (
	"net/http"

	"quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError maps a classified domain error onto the HTTP taxonomy.
// Unclassified errors are logged and surfaced as 500.
func FromError(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindValidation:
		Fail(c, http.StatusBadRequest, err.Error())
	case KindUnauthorized:
		Fail(c, http.StatusUnauthorized, err.Error())
	case KindForbidden:
		Fail(c, http.StatusForbidden, err.Error())
	case KindNotFound:
		Fail(c, http.StatusNotFound, err.Error())
	case KindConflict:
		Fail(c, http.StatusConflict, err.Error())
	case KindTooManyRequests:
		Fail(c, http.StatusTooManyRequests, err.Error())
	default:
		LogInternalError(c, err)
	}
}
