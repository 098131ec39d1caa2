package model

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"staffdir/internal/auth"
	"staffdir/internal/config"
	"staffdir/internal/entity"
)

// EnsureDefaultAdmin creates the bootstrap administrator account and its
// placeholder profile on an empty database. Any existing account means the
// instance has been provisioned and the seed is skipped. The account keeps
// the initial-password flag so the first login prompts a credential change.
func EnsureDefaultAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return errors.New("repository is nil")
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	login := strings.TrimSpace(cfg.BootstrapAdminLogin)
	if login == "" {
		login = "admin"
	}

	hash, err := auth.HashPassword(cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Login:             login,
		PasswordHash:      hash,
		Role:              entity.UserRoleAdmin,
		IsActive:          true,
		IsInitialPassword: true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		// 并发启动时另一个实例可能已经创建了管理员
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	profile := DefaultProfile(admin)
	profile.FirstName = "Admin"
	profile.LastName = "System"
	profile.Department = "IT"
	if err := repo.CreateProfile(ctx, profile); err != nil {
		return err
	}

	logrus.WithField("login", login).Info("bootstrap admin created")
	return nil
}

// DefaultProfile builds the placeholder profile created together with every
// new user.
func DefaultProfile(user *entity.DbUser) *entity.DbProfile {
	email := "default@example.com"
	if user != nil && strings.Contains(user.Login, "@") {
		email = user.Login
	}
	profile := &entity.DbProfile{
		FirstName:    "New",
		LastName:     "Employee",
		Department:   "Unassigned",
		Phone:        "+70000000000",
		Email:        email,
		WorkingHours: "09:00-18:00",
		Availability: "Unknown",
	}
	if user != nil {
		profile.UserID = user.ID
	}
	return profile
}
