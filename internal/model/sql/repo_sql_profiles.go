package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"staffdir/internal/entity"
)

// CreateProfile persists a new employee profile. The unique index on
// user_id guarantees the one-profile-per-user invariant under concurrent
// creation; violations surface as gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateProfile(ctx context.Context, profile *entity.DbProfile) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if profile == nil {
		return fmt.Errorf("profile is nil")
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// UpdateProfile applies the set fields of updates to the profile row.
func (r *GormRepository) UpdateProfile(ctx context.Context, id uint, updates entity.ProfileUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid profile id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbProfile{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// GetProfileByUserID loads the profile owned by the given user.
func (r *GormRepository) GetProfileByUserID(ctx context.Context, userID uint) (*entity.DbProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var profile entity.DbProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByID loads a profile by its own ID.
func (r *GormRepository) GetProfileByID(ctx context.Context, id uint) (*entity.DbProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid profile id")
	}
	var profile entity.DbProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns every employee profile.
func (r *GormRepository) ListProfiles(ctx context.Context) ([]entity.DbProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profiles []entity.DbProfile
	if err := r.db.WithContext(ctx).Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// SearchProfiles performs a case-insensitive substring match across the
// name, phone, email and department columns.
func (r *GormRepository) SearchProfiles(ctx context.Context, term string) ([]entity.DbProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	kw := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var profiles []entity.DbProfile
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(middle_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ? OR LOWER(department) LIKE ?",
			kw, kw, kw, kw, kw, kw).
		Order("id").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfile removes a profile row by ID.
func (r *GormRepository) DeleteProfile(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid profile id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbProfile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
