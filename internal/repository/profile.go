package repository

import (
	"context"
	"errors"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles and
// their experience and education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uint) error
	AddEducation(ctx context.Context, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) error
}

type profileRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

// newestFirst orders child collections with the most recently added entry
// first, breaking created_at ties by id.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByUserID", "profiles")
	defer span.End()
	defer r.metrics.TrackQuery("select", "profiles")()

	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", newestFirst).
		Preload("Education", newestFirst).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "profiles")
	defer span.End()

	var profiles []models.Profile
	err := cache.CacheAside(ctx, cache.ProfilesListKey, &profiles, cache.ProfilesListTTL, func() error {
		defer r.metrics.TrackQuery("select", "profiles")()
		if err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Experience", newestFirst).
			Preload("Education", newestFirst).
			Order("created_at DESC").
			Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save creates or updates the profile along with its serialized skills and
// social links. Experience and education rows are managed separately.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).
		Omit("Experience", "Education", "User").
		Save(profile).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfilesListKey)
	return nil
}

// RemoveExperience deletes the entry if it belongs to the profile. Unknown
// IDs are a no-op.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Experience{}, expID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfilesListKey)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfilesListKey)
	return nil
}

// RemoveEducation deletes the entry if it belongs to the profile. Unknown
// IDs are a no-op.
func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Education{}, eduID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfilesListKey)
	return nil
}
