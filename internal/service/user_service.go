package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

const maxAvatarSize = 2 << 20

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

type ProfileUpdateRequest struct {
	Username *string `json:"username"`
}

func (s *UserService) GetProfile(p model.Principal) (*model.User, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	user, err := s.UserRepo.FindByID(p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(p model.Principal, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetProfile(p)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		_, err := s.UserRepo.FindByUsername(*req.Username)
		if err == nil {
			return nil, util.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image through the configured storage provider and
// saves its URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, p model.Principal, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	user, err := s.GetProfile(p)
	if err != nil {
		return "", err
	}

	if size > maxAvatarSize {
		return "", util.E(util.KindValidation, "avatar must be 2MB or smaller")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", util.E(util.KindValidation, "avatar must be an image file")
	}

	objectName := fmt.Sprintf("avatars/%d_%d%s", user.ID, time.Now().Unix(), ext)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
