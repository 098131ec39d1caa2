package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"staffdir/internal/auth"
	"staffdir/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateUser 管理员创建用户，同时生成占位档案
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	admin := CurrentUser(c)
	if admin == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	login := strings.TrimSpace(req.Login)
	if err := auth.ValidateLogin(login); err != nil {
		BadRequest(c, ErrCodeInvalidField, err.Error())
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		BadRequest(c, ErrCodeWeakPassword, err.Error())
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}
	if role != entity.UserRoleAdmin && role != entity.UserRoleUser {
		BadRequest(c, ErrCodeInvalidField, "role must be 'admin' or 'user'")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to create user")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	adminID := admin.ID
	user := &entity.DbUser{
		Login:             login,
		PasswordHash:      hash,
		Role:              role,
		IsActive:          true,
		IsInitialPassword: true,
		CreatedBy:         &adminID,
	}

	if err := h.directory.ProvisionUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeLoginExists, "login already taken")
			return
		}
		logrus.WithError(err).WithField("login", login).Error("failed to create user")
		InternalError(c, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, makeUserSummary(user))
}

// DeleteUser 管理员删除用户，级联删除档案与照片文件
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	admin := CurrentUser(c)
	if admin == nil {
		Unauthorized(c, "authentication required")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "id must be a positive integer")
		return
	}

	// 不允许删除自己
	if uint(userID) == admin.ID {
		BadRequest(c, ErrCodeCannotDeleteSelf, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, uint(userID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load user")
		InternalError(c, "failed to delete user")
		return
	}

	if err := h.directory.DeleteUserCascade(ctx, uint(userID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("failed to delete user")
		InternalError(c, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
