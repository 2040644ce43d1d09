package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/apperrors"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
	"github.com/fathima-sithara/media-vault/internal/storage"
)

const profilePicFolder = "profile_pics"

type ProfileFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ProfileService struct {
	users  repository.UserRepository
	store  storage.BlobStore
	logger *zap.SugaredLogger
}

func NewProfileService(users repository.UserRepository, store storage.BlobStore, logger *zap.SugaredLogger) *ProfileService {
	return &ProfileService{users: users, store: store, logger: logger}
}

// Get returns the profile without the password hash or notification list.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	u.Password = ""
	u.Notifications = nil
	return u, nil
}

// Update changes username/email only when supplied. A missing file leaves
// the stored profile picture untouched.
func (s *ProfileService) Update(ctx context.Context, userID, username, email string, file *ProfileFile) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if file != nil {
		url, key, err := s.store.Upload(ctx, profilePicFolder, file.Name, file.ContentType, file.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: profile picture upload failed: %v", apperrors.ErrUpstream, err)
		}
		if thumb, err := thumbnail(file.Data); err == nil {
			if _, _, err := s.store.Upload(ctx, profilePicFolder, "thumb_"+file.Name+".jpg", "image/jpeg", thumb); err != nil {
				s.logger.Warnf("thumbnail upload: %v", err)
			}
		}
		u.ProfilePic = url
		u.ProfilePicID = key
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}

	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already exists", apperrors.ErrConflict)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	u.Password = ""
	u.Notifications = nil
	return u, nil
}

func (s *ProfileService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if u.Notifications == nil {
		return []models.Notification{}, nil
	}
	return u.Notifications, nil
}

func (s *ProfileService) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	err := s.users.MarkAllNotificationsRead(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}
	return err
}

func thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
