package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"staffdir/internal/auth"
	"staffdir/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Token 颁发访问令牌。请求体为表单编码的 username/password。
// 凭证错误统一返回 400，不区分用户不存在与密码错误。
func (h *HTTPHandler) Token(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))
	if username == "" || password == "" {
		BadRequest(c, ErrCodeMissingField, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("login", username).Warn("login attempt for unknown user")
			BadRequest(c, ErrCodeInvalidCredentials, "incorrect username or password")
			return
		}
		logrus.WithError(err).WithField("login", username).Error("failed to load user during login")
		InternalError(c, "failed to authenticate")
		return
	}

	if !user.IsActive {
		Forbidden(c, "account is disabled")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("login", username).Warn("password verification failed")
		BadRequest(c, ErrCodeInvalidCredentials, "incorrect username or password")
		return
	}

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.TokenResponse{
		AccessToken:            token,
		TokenType:              "bearer",
		RequiresPasswordChange: user.IsInitialPassword,
	})
}

// Me 返回当前认证用户的摘要信息
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, makeUserSummary(dbUser))
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:                user.ID,
		Login:             user.Login,
		Role:              user.Role,
		IsActive:          user.IsActive,
		IsInitialPassword: user.IsInitialPassword,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}
