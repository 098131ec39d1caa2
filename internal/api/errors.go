package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeConflict       = "ERR_CONFLICT"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeLoginExists        = "ERR_LOGIN_EXISTS"
	ErrCodeUserDisabled       = "ERR_USER_DISABLED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeWeakPassword       = "ERR_WEAK_PASSWORD"

	// 资源错误码
	ErrCodeUserNotFound    = "ERR_USER_NOT_FOUND"
	ErrCodeProfileNotFound = "ERR_PROFILE_NOT_FOUND"

	// 业务逻辑错误码
	ErrCodeMissingField     = "ERR_MISSING_FIELD"
	ErrCodeCannotDeleteSelf = "ERR_CANNOT_DELETE_SELF"
	ErrCodeInvalidField     = "ERR_INVALID_FIELD"

	// 图片处理错误码
	ErrCodePayloadTooLarge      = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMediaType = "ERR_UNSUPPORTED_MEDIA_TYPE"
	ErrCodeInvalidImage         = "ERR_INVALID_IMAGE"
	ErrCodeStorageFailure       = "ERR_STORAGE_FAILURE"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, detail string) {
	c.JSON(status, APIError{
		Code:   code,
		Detail: detail,
	})
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, detail string) {
	ErrorResponse(c, http.StatusBadRequest, code, detail)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, detail)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, detail)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, detail string) {
	ErrorResponse(c, http.StatusNotFound, code, detail)
}

// Conflict 409 唯一性冲突
func Conflict(c *gin.Context, code string, detail string) {
	ErrorResponse(c, http.StatusConflict, code, detail)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, detail)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required")
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
