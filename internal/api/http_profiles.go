package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"staffdir/internal/entity"
	"staffdir/internal/imaging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// profileResponse 对外返回的档案视图，照片字段替换为可访问 URL
type profileResponse struct {
	entity.DbProfile
	Photo      string `json:"photo,omitempty"`
	PhotoThumb string `json:"photo_thumb,omitempty"`
}

func (h *HTTPHandler) makeProfileResponse(profile *entity.DbProfile) profileResponse {
	return profileResponse{
		DbProfile:  *profile,
		Photo:      h.publicURL(profile.Photo),
		PhotoThumb: h.publicURL(profile.PhotoThumb),
	}
}

// GetMyProfile 返回当前用户的员工档案
func (h *HTTPHandler) GetMyProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, h.makeProfileResponse(profile))
}

// UpdateMyProfile 部分更新当前用户的档案，只应用出现的字段
func (h *HTTPHandler) UpdateMyProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	h.applyProfileUpdate(ctx, c, profile)
}

// applyProfileUpdate 绑定、校验并应用档案部分更新，/profiles/me 与管理员路径共用
func (h *HTTPHandler) applyProfileUpdate(ctx context.Context, c *gin.Context, profile *entity.DbProfile) {
	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if err := validateProfileUpdate(&req); err != nil {
		BadRequest(c, ErrCodeInvalidField, err.Error())
		return
	}

	updates := entity.ProfileUpdates{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Department:   req.Department,
		Phone:        req.Phone,
		Email:        req.Email,
		Availability: req.Availability,
		WorkingHours: req.WorkingHours,
		VKLink:       req.VKLink,
		TelegramLink: req.TelegramLink,
		SkypeLink:    req.SkypeLink,
		WhatsappLink: req.WhatsappLink,
	}
	if req.Projects != nil {
		projects := entity.StringArray(*req.Projects)
		updates.Projects = &projects
	}

	if updates.IsEmpty() {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	if err := h.repo.UpdateProfile(ctx, profile.ID, updates); err != nil {
		logrus.WithError(err).WithField("profile_id", profile.ID).Error("failed to update profile")
		InternalError(c, "failed to update profile")
		return
	}

	updated, err := h.repo.GetProfileByID(ctx, profile.ID)
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profile.ID).Error("failed to reload profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, h.makeProfileResponse(updated))
}

// DeleteMyProfile 删除当前用户的档案及其照片文件
func (h *HTTPHandler) DeleteMyProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	if err := h.directory.DeleteProfileCascade(ctx, profile); err != nil {
		logrus.WithError(err).WithField("profile_id", profile.ID).Error("failed to delete profile")
		InternalError(c, "failed to delete profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

// UploadMyPhoto 接收 multipart 照片，生成主图与缩略图并替换旧照片
func (h *HTTPHandler) UploadMyPhoto(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeMissingField, "file is required")
		return
	}

	maxBytes := int64(h.cfg.MaxUploadMiB) << 20
	if fileHeader.Size > maxBytes {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "uploaded file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read uploaded file")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	result, err := h.directory.ReplacePhoto(ctx, profile, raw, fileHeader.Filename)
	if err != nil {
		h.respondImagingError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.PhotoUploadResponse{
		Message:      "photo uploaded",
		FileURL:      h.publicURL(result.Main),
		ThumbnailURL: h.publicURL(result.Thumb),
	})
}

// respondImagingError 把图片流水线的哨兵错误映射为 HTTP 状态码
func (h *HTTPHandler) respondImagingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, imaging.ErrPayloadTooLarge):
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "uploaded file is too large")
	case errors.Is(err, imaging.ErrUnsupportedType):
		ErrorResponse(c, http.StatusUnsupportedMediaType, ErrCodeUnsupportedMediaType, "unsupported file type")
	case errors.Is(err, imaging.ErrInvalidImage):
		BadRequest(c, ErrCodeInvalidImage, "file is not a valid image")
	case errors.Is(err, imaging.ErrStorage):
		logrus.WithError(err).Error("photo storage failure")
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeStorageFailure, "failed to store photo")
	default:
		logrus.WithError(err).Error("photo upload failed")
		InternalError(c, "failed to process photo")
	}
}

// ListProfiles 返回全部员工档案
func (h *HTTPHandler) ListProfiles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profiles, err := h.repo.ListProfiles(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list profiles")
		InternalError(c, "failed to list profiles")
		return
	}

	responses := make([]profileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, h.makeProfileResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// SearchProfiles 按姓名、电话、邮箱、部门做大小写不敏感的子串搜索
func (h *HTTPHandler) SearchProfiles(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		MissingField(c, "term")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, err := h.directory.Search(ctx, term)
	if err != nil {
		logrus.WithError(err).WithField("term", term).Error("profile search failed")
		InternalError(c, "search failed")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetProfileStranger 按 user_id 查看他人档案
func (h *HTTPHandler) GetProfileStranger(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "user_id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, h.makeProfileResponse(profile))
}

// UpdateProfileStranger 管理员按 profile_id 修改他人档案
func (h *HTTPHandler) UpdateProfileStranger(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Query("profile_id"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "profile_id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetProfileByID(ctx, uint(profileID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProfileNotFound, "profile not found")
			return
		}
		logrus.WithError(err).WithField("profile_id", profileID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	h.applyProfileUpdate(ctx, c, profile)
}
