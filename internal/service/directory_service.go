package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"staffdir/internal/cache"
	"staffdir/internal/entity"
	"staffdir/internal/imaging"
	"staffdir/internal/model"
	"staffdir/internal/storage"
)

// DirectoryService 员工目录业务逻辑：用户与档案的同生命周期管理、
// 照片替换协议、缓存辅助搜索。
type DirectoryService struct {
	repo     model.Repository
	store    storage.Storage
	pipeline *imaging.Pipeline
	search   *cache.SearchCache
}

// NewDirectoryService creates the directory service instance.
func NewDirectoryService(repo model.Repository, store storage.Storage, pipeline *imaging.Pipeline, search *cache.SearchCache) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		store:    store,
		pipeline: pipeline,
		search:   search,
	}
}

// ProvisionUser creates a user together with its placeholder profile. The
// two records share one lifecycle: every user owns exactly one profile from
// the moment it exists.
func (s *DirectoryService) ProvisionUser(ctx context.Context, user *entity.DbUser) error {
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}
	if err := s.repo.CreateProfile(ctx, model.DefaultProfile(user)); err != nil {
		logrus.WithError(err).WithField("login", user.Login).Error("failed to create profile for new user")
		return err
	}
	return nil
}

// DeleteUserCascade removes the user, its profile and the profile's stored
// image pair. File deletion is best-effort: failures are logged and the row
// deletions still proceed. A missing profile is tolerated; any other lookup
// failure aborts before the user row is touched.
func (s *DirectoryService) DeleteUserCascade(ctx context.Context, userID uint) error {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		s.deleteImagePair(ctx, profile)
		if err := s.repo.DeleteProfile(ctx, profile.ID); err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	return s.repo.DeleteUser(ctx, userID)
}

// DeleteProfileCascade removes a profile row and, best-effort, its stored
// image pair.
func (s *DirectoryService) DeleteProfileCascade(ctx context.Context, profile *entity.DbProfile) error {
	s.deleteImagePair(ctx, profile)
	return s.repo.DeleteProfile(ctx, profile.ID)
}

// ReplacePhoto runs the photo replacement protocol: delete the previously
// referenced pair (best-effort, logged), ingest the new upload, then record
// the new filenames on the profile. If the record update fails the freshly
// written files orphan; that degraded state is accepted over a two-phase
// commit.
func (s *DirectoryService) ReplacePhoto(ctx context.Context, profile *entity.DbProfile, raw []byte, declaredFilename string) (imaging.Result, error) {
	s.deleteImagePair(ctx, profile)

	result, err := s.pipeline.Ingest(ctx, raw, declaredFilename)
	if err != nil {
		return imaging.Result{}, err
	}

	updates := entity.ProfileUpdates{
		Photo:      &result.Main,
		PhotoThumb: &result.Thumb,
	}
	if err := s.repo.UpdateProfile(ctx, profile.ID, updates); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"profile_id": profile.ID,
			"photo":      result.Main,
		}).Error("failed to record new photo, files orphaned")
		return imaging.Result{}, err
	}

	profile.Photo = result.Main
	profile.PhotoThumb = result.Thumb
	return result, nil
}

// Search returns the trimmed result set for a case-insensitive substring
// search, serving repeated identical queries from the cache for its TTL
// window. Cache failures only cost latency, never correctness.
func (s *DirectoryService) Search(ctx context.Context, term string) ([]entity.ProfileSearchItem, error) {
	if items, ok := s.search.GetSearch(ctx, term); ok {
		return items, nil
	}

	profiles, err := s.repo.SearchProfiles(ctx, term)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ProfileSearchItem, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		items = append(items, entity.ProfileSearchItem{
			ID:         p.ID,
			UserID:     p.UserID,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			MiddleName: p.MiddleName,
			Phone:      p.Phone,
			Email:      p.Email,
			Department: p.Department,
		})
	}

	s.search.SetSearch(ctx, term, items)
	return items, nil
}

// deleteImagePair removes the profile's referenced image files. Missing or
// undeletable files are logged, never fatal.
func (s *DirectoryService) deleteImagePair(ctx context.Context, profile *entity.DbProfile) {
	if profile == nil {
		return
	}
	for _, filename := range []string{profile.Photo, profile.PhotoThumb} {
		if strings.TrimSpace(filename) == "" {
			continue
		}
		if err := s.store.Delete(ctx, filename); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"profile_id": profile.ID,
				"file":       filename,
			}).Warn("failed to delete stored image")
		}
	}
}
