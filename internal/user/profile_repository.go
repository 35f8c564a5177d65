package user

import (
	"context"
	"fmt"

	"gomentor/internal/dbmysql"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]*dbmysql.Profile, error)
	// GetProfile loads the profile with its user and every child collection.
	GetProfile(ctx context.Context, profileID uint64) (*dbmysql.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ListProfiles(ctx context.Context) ([]*dbmysql.Profile, error) {
	var profiles []*dbmysql.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) GetProfile(ctx context.Context, profileID uint64) (*dbmysql.Profile, error) {
	var profile dbmysql.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Certificates", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_issued DESC")
		}).
		Preload("Skills").
		Preload("Achievements", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_achieved DESC")
		}).
		Preload("WorkExperience", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date DESC")
		}).
		First(&profile, "id = ?", profileID).Error
	if err != nil {
		return nil, lookupError(err, "profile")
	}
	return &profile, nil
}
