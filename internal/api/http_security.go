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

// UpdateCredentials 修改当前用户的登录名和/或密码。
// 设置新密码时清除初始密码标记，仅改登录名不影响该标记。
func (h *HTTPHandler) UpdateCredentials(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.CredentialsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if req.NewLogin == nil && req.NewPassword == nil {
		BadRequest(c, ErrCodeInvalidRequest, "nothing to change")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user")
		InternalError(c, "failed to update credentials")
		return
	}

	if err := auth.VerifyPassword(dbUser.PasswordHash, req.OldPassword); err != nil {
		BadRequest(c, ErrCodeInvalidCredentials, "old password is incorrect")
		return
	}

	updates := entity.UserUpdates{}

	if req.NewLogin != nil {
		newLogin := strings.TrimSpace(*req.NewLogin)
		if err := auth.ValidateLogin(newLogin); err != nil {
			BadRequest(c, ErrCodeInvalidField, err.Error())
			return
		}
		if newLogin != dbUser.Login {
			updates.Login = &newLogin
		}
	}

	if req.NewPassword != nil {
		newPassword := *req.NewPassword
		if err := auth.ValidatePassword(newPassword); err != nil {
			BadRequest(c, ErrCodeWeakPassword, err.Error())
			return
		}
		if newPassword == req.OldPassword {
			BadRequest(c, ErrCodeInvalidField, "new password must differ from the old one")
			return
		}
		if req.ConfirmNewPassword == nil || *req.ConfirmNewPassword != newPassword {
			BadRequest(c, ErrCodeInvalidField, "passwords do not match")
			return
		}
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password")
			InternalError(c, "failed to update credentials")
			return
		}
		updates.PasswordHash = &hash

		// 只有设置新密码才清除初始密码标记
		cleared := false
		updates.IsInitialPassword = &cleared
	}

	if err := h.repo.UpdateUser(ctx, dbUser.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeLoginExists, "login already taken")
			return
		}
		logrus.WithError(err).WithField("user_id", dbUser.ID).Error("failed to update credentials")
		InternalError(c, "failed to update credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "credentials updated"})
}

// SkipPasswordChange 用户显式跳过首次修改密码的提示
func (h *HTTPHandler) SkipPasswordChange(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cleared := false
	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{IsInitialPassword: &cleared}); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to clear initial password flag")
		InternalError(c, "failed to update account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password change skipped"})
}
