package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"staffdir/internal/auth"
	"staffdir/internal/cache"
	"staffdir/internal/config"
	"staffdir/internal/imaging"
	"staffdir/internal/model"
	"staffdir/internal/service"
	"staffdir/internal/storage"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	directory *service.DirectoryService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, search *cache.SearchCache) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	pipeline := imaging.NewPipeline(store, cfg.MaxUploadMiB<<20)
	directory := service.NewDirectoryService(repo, store, pipeline, search)

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		directory:         directory,
	}

	return handler, nil
}

// RegisterRoutes 挂载全部路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authGroup := r.Group("/auth")
	authGroup.POST("/token", h.Token)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	profiles := r.Group("/profiles")
	profiles.Use(h.AuthMiddleware())
	profiles.GET("/me", h.GetMyProfile)
	profiles.PUT("/me", h.UpdateMyProfile)
	profiles.DELETE("/me", h.DeleteMyProfile)
	profiles.POST("/me/photo", h.UploadMyPhoto)
	profiles.GET("/viewProfiles", h.ListProfiles)
	profiles.GET("/search", h.SearchProfiles)
	profiles.GET("/profileStranger", h.GetProfileStranger)
	profiles.PUT("/profileStranger", h.RequireAdmin(), h.UpdateProfileStranger)

	userAdmin := r.Group("/users")
	userAdmin.Use(h.AuthMiddleware(), h.RequireAdmin())
	userAdmin.POST("/", h.CreateUser)
	userAdmin.DELETE("/:id", h.DeleteUser)

	security := r.Group("/security")
	security.Use(h.AuthMiddleware())
	security.PUT("/credentials", h.UpdateCredentials)
	security.POST("/skip-password-change", h.SkipPasswordChange)
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/uploads"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
