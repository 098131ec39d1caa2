package model

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"staffdir/internal/config"
	"staffdir/internal/entity"
	modelsql "staffdir/internal/model/sql"
)

func newSeedTestRepository(t *testing.T) Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.DbUser{}, &entity.DbProfile{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return modelsql.NewGormRepository(db)
}

func TestEnsureDefaultAdminSeedsEmptyDatabase(t *testing.T) {
	repo := newSeedTestRepository(t)
	ctx := context.Background()
	cfg := config.Config{BootstrapAdminLogin: "admin", BootstrapAdminPassword: "Admin123!"}

	if err := EnsureDefaultAdmin(ctx, repo, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	admin, err := repo.GetUserByLogin(ctx, "admin")
	if err != nil {
		t.Fatalf("expected bootstrap admin to exist: %v", err)
	}
	if admin.Role != entity.UserRoleAdmin {
		t.Errorf("expected admin role, got %q", admin.Role)
	}
	if !admin.IsInitialPassword {
		t.Error("expected initial password flag on the bootstrap account")
	}
	if _, err := repo.GetProfileByUserID(ctx, admin.ID); err != nil {
		t.Errorf("expected bootstrap admin profile: %v", err)
	}

	// 再次执行不应重复创建
	if err := EnsureDefaultAdmin(ctx, repo, cfg); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one user after repeated seeding, got %d", count)
	}
}

func TestEnsureDefaultAdminSkipsProvisionedDatabase(t *testing.T) {
	repo := newSeedTestRepository(t)
	ctx := context.Background()

	existing := &entity.DbUser{
		Login:        "ivan",
		PasswordHash: "x",
		Role:         entity.UserRoleUser,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, existing); err != nil {
		t.Fatalf("failed to create existing user: %v", err)
	}

	cfg := config.Config{BootstrapAdminLogin: "admin", BootstrapAdminPassword: "Admin123!"}
	if err := EnsureDefaultAdmin(ctx, repo, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetUserByLogin(ctx, "admin"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected no admin to be seeded on a provisioned database, got %v", err)
	}
	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected user count to stay at 1, got %d", count)
	}
}
