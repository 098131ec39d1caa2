package model

import (
	"context"

	"staffdir/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByLogin(ctx context.Context, login string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 员工档案
	CreateProfile(ctx context.Context, profile *entity.DbProfile) error
	UpdateProfile(ctx context.Context, id uint, updates entity.ProfileUpdates) error
	GetProfileByUserID(ctx context.Context, userID uint) (*entity.DbProfile, error)
	GetProfileByID(ctx context.Context, id uint) (*entity.DbProfile, error)
	ListProfiles(ctx context.Context) ([]entity.DbProfile, error)
	SearchProfiles(ctx context.Context, term string) ([]entity.DbProfile, error)
	DeleteProfile(ctx context.Context, id uint) error
}
