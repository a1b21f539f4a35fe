package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-blog-backend/internal/apperr"
)

// ErrorBody 统一错误体
type ErrorBody struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
}

// ValidationBody 校验失败时多带一个 field -> message 映射
type ValidationBody struct {
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

// Error 把业务错误映射到 HTTP 状态 + 统一错误体
func Error(c *gin.Context, err error) {
	e := apperr.As(err)
	_ = c.Error(err)
	c.JSON(e.Status, ErrorBody{
		Message:   e.Message,
		Timestamp: time.Now(),
		Status:    e.Status,
	})
}

// BindError 绑定/校验失败走 400；validator 错误展开成字段映射
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, ValidationBody{
			Message:   "validation failed",
			Errors:    fields,
			Status:    http.StatusBadRequest,
			Timestamp: time.Now(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorBody{
		Message:   err.Error(),
		Timestamp: time.Now(),
		Status:    http.StatusBadRequest,
	})
}

// AbortError 中间件用：直接以给定状态码中止
func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Message:   msg,
		Timestamp: time.Now(),
		Status:    status,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
