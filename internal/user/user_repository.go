package user

import (
	"context"
	"errors"
	"fmt"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock_repositories.go -package=user gomentor/internal/user UserRepository,ProfileRepository

// UserRepository covers account lookups used by auth and the mentor directory.
type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	// GetUserByLogin matches either the username or the email, active or not.
	GetUserByLogin(ctx context.Context, login string) (*dbmysql.User, error)
	CheckUserExists(ctx context.Context, username, email string) (bool, error)
	ListMentors(ctx context.Context) ([]*dbmysql.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).First(&user).Error
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, common.NormalizeEmail(login)).
		First(&user).Error
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) CheckUserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) ListMentors(ctx context.Context) ([]*dbmysql.User, error) {
	var users []*dbmysql.User
	err := r.db.WithContext(ctx).
		Where("is_staff = ? AND is_active = ?", true, true).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return users, nil
}

func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
