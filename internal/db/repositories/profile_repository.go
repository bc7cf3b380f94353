package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilotconnect/internal/apperrors"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate inserts an empty profile unless one exists, then reads it back.
// The unique index on user_id settles concurrent creators; created reports
// whether this call inserted the row.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uint) (profile *models.PilotProfile, created bool, err error) {
	fresh := models.PilotProfile{UserID: userID}

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&fresh)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to create profile: %w", res.Error)
	}

	profile, err = r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return profile, res.RowsAffected > 0, nil
}

// Create inserts a profile and fails with ErrUniqueness if the user has one
func (r *ProfileRepository) Create(ctx context.Context, profile *models.PilotProfile) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: profile for user %d", apperrors.ErrUniqueness, profile.UserID)
	}
	return err
}

// GetByUserID loads a profile with its user and home airport
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.PilotProfile, error) {
	var profile models.PilotProfile

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("HomeAirport").
		Where("user_id = ?", userID).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile for user %d", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return &profile, nil
}

// Save writes the editable columns of the profile. last_activity_at belongs
// to Touch and relationships are left alone.
func (r *ProfileRepository) Save(ctx context.Context, profile *models.PilotProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations, "last_activity_at").Save(profile).Error
}

// Touch stamps last_activity_at without touching any other column
func (r *ProfileRepository) Touch(ctx context.Context, userID uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.PilotProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("last_activity_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: profile for user %d", apperrors.ErrNotFound, userID)
	}
	return nil
}
