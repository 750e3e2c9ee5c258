package service

import (
	"context"
	"errors"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/mapper"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// UserService serves user profiles and the avatar operations.
type UserService struct {
	users     *repository.UserRepository
	relations *repository.RelationRepository
	mediaRoot string
}

// NewUserService creates and returns a new UserService.
func NewUserService(users *repository.UserRepository, relations *repository.RelationRepository, mediaRoot string) *UserService {
	return &UserService{users: users, relations: relations, mediaRoot: mediaRoot}
}

// GetProfile returns a user's compact profile with the viewer-relative
// subscription flag. viewerID 0 means anonymous.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*entity.UserView, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("user not found")
		}
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != userID {
		isSubscribed, err = s.relations.Exists(ctx, repository.RelationSubscription, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	view := mapper.UserToView(user, isSubscribed)
	return &view, nil
}

// ListUsers returns one page of user profiles plus the total count.
func (s *UserService) ListUsers(ctx context.Context, viewerID uint, page util.PageParams) ([]entity.UserView, int64, error) {
	users, count, err := s.users.ListUsers(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	subscribed, err := s.relations.SubscribedAuthors(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]entity.UserView, 0, len(users))
	for i := range users {
		views = append(views, mapper.UserToView(&users[i], subscribed[users[i].ID]))
	}
	return views, count, nil
}

// UpdateAvatar decodes the embedded image, stores it under the media root
// and replaces the previous file. It returns the public avatar URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, encoded string) (string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	path, err := util.SaveBase64Image(encoded, s.mediaRoot, "user_images")
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateAvatar(ctx, userID, path); err != nil {
		return "", err
	}
	if err := util.RemoveMediaFile(s.mediaRoot, user.Avatar); err != nil {
		return "", err
	}
	return util.MediaURL(path), nil
}

// DeleteAvatar removes the stored avatar file and clears the field.
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateAvatar(ctx, userID, ""); err != nil {
		return err
	}
	return util.RemoveMediaFile(s.mediaRoot, user.Avatar)
}
