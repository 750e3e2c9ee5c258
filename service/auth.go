package service

import (
	"context"
	"errors"

	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// AuthService handles registration, credential checks and token issuance.
type AuthService struct {
	users        *repository.UserRepository
	jwtSecretKey []byte
}

// NewAuthService creates and returns a new AuthService.
func NewAuthService(users *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:        users,
		jwtSecretKey: []byte(cfg.JWTSecretKey),
	}
}

// Register validates the payload and creates the user with a hashed
// password. Email and username must be globally unique; the unique indexes
// remain the backstop for concurrent registrations.
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*model.User, error) {
	if err := util.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		return nil, util.ValidationError("password", err.Error())
	}

	if existing, err := s.users.GetUserByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, util.ValidationError("email", "a user with this email already exists")
	}
	if existing, err := s.users.GetUserByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, util.ValidationError("username", "a user with this username already exists")
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ValidationError("errors", "a user with this email or username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login exchanges email and password for a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !util.CheckPasswordHash(password, user.Password) {
		return "", util.ValidationError("non_field_errors", "unable to log in with provided credentials")
	}
	return util.GenerateJWT(user.ID, user.Email, s.jwtSecretKey)
}

// SetPassword replaces the caller's password after verifying the current
// one.
func (s *AuthService) SetPassword(ctx context.Context, userID uint, req *entity.SetPasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !util.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return util.ValidationError("current_password", "current password is incorrect")
	}
	if err := util.ValidatePassword(req.NewPassword); err != nil {
		return util.ValidationError("new_password", err.Error())
	}
	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
