package repository

import (
	"context"
	"errors"

	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// UserRepository is a struct that holds the database connection.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates and returns a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser creates a new user in the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// GetUserByID fetches a user from the database by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email; returns (nil, nil) when no user
// carries the address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches a user by username; returns (nil, nil) when the
// name is unclaimed.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns one page of users ordered by username plus the total
// count.
func (r *UserRepository) ListUsers(ctx context.Context, page util.PageParams) ([]model.User, int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.DB.WithContext(ctx).
		Order("username").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// ListFollowedAuthors returns one page of the authors the given user
// follows, ordered by username, plus the total count.
func (r *UserRepository) ListFollowedAuthors(ctx context.Context, userID uint, page util.PageParams) ([]model.User, int64, error) {
	followed := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&model.User{}).
			Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
			Where("subscriptions.user_id = ?", userID)
	}

	var count int64
	if err := followed().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []model.User
	err := followed().
		Order("users.username").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return authors, count, nil
}

// UpdateAvatar stores the new avatar path for a user. An empty path clears
// the avatar.
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID uint, path string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", path).Error
}

// UpdatePassword stores a new password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash []byte) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}
