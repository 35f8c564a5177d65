package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"
)

//go:generate mockgen -destination=mock_user_service.go -package=user gomentor/internal/user UserService

type UserService interface {
	RegisterUser(ctx context.Context, email, username, firstName, lastName, password string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, login, password string) (*dbmysql.User, string, error)
	GetUser(ctx context.Context, userID uint64) (*dbmysql.User, error)
	ListMentors(ctx context.Context) ([]*dbmysql.User, error)
	ListProfiles(ctx context.Context) ([]*dbmysql.Profile, error)
	GetProfile(ctx context.Context, profileID uint64) (*dbmysql.Profile, error)
}

type userService struct {
	userRepo    UserRepository
	profileRepo ProfileRepository
	tokens      *common.TokenManager
}

func NewUserService(userRepo UserRepository, profileRepo ProfileRepository, tokens *common.TokenManager) UserService {
	return &userService{userRepo: userRepo, profileRepo: profileRepo, tokens: tokens}
}

func (s *userService) RegisterUser(ctx context.Context, email, username, firstName, lastName, password string) (*dbmysql.User, string, error) {
	username = strings.TrimSpace(username)
	if err := common.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}
	email = common.NormalizeEmail(email)

	exists, err := s.userRepo.CheckUserExists(ctx, username, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("%w: username or email already registered", common.ErrConflict)
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &dbmysql.User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: hashed,
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Printf("User registered: %s (id=%d)", user.Username, user.UserID)
	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, login, password string) (*dbmysql.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password required", common.ErrValidation)
	}

	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: account is disabled", common.ErrUnauthenticated)
	}
	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated)
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetUser(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ListMentors returns active staff users.
func (s *userService) ListMentors(ctx context.Context) ([]*dbmysql.User, error) {
	return s.userRepo.ListMentors(ctx)
}

func (s *userService) ListProfiles(ctx context.Context) ([]*dbmysql.Profile, error) {
	return s.profileRepo.ListProfiles(ctx)
}

func (s *userService) GetProfile(ctx context.Context, profileID uint64) (*dbmysql.Profile, error) {
	return s.profileRepo.GetProfile(ctx, profileID)
}
