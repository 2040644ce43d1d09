package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/apperrors"
	"github.com/fathima-sithara/media-vault/internal/events"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
	"github.com/fathima-sithara/media-vault/internal/storage"
)

const (
	videoFolder  = "videos"
	uploadFolder = "uploads"

	defaultPageSize = 10
	maxPageSize     = 100
)

type UploadInput struct {
	FileType    string `validate:"required,oneof=video audio"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Genre       string `validate:"required"`
	Category    string `validate:"required,oneof=movie series music"`
}

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

type MediaService struct {
	repo     repository.MediaRepository
	store    storage.BlobStore
	pub      events.Publisher
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewMediaService(repo repository.MediaRepository, store storage.BlobStore, pub events.Publisher, logger *zap.SugaredLogger) *MediaService {
	return &MediaService{
		repo:     repo,
		store:    store,
		pub:      pub,
		validate: validator.New(),
		logger:   logger,
	}
}

// Upload sends the file to the blob store first; the catalog record is only
// written once the blob exists. An insert failure leaves the blob orphaned,
// which is tolerated. The reverse (record without blob) is not.
func (s *MediaService) Upload(ctx context.Context, in UploadInput, filename, contentType string, data []byte) (*models.Media, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: all required fields (fileType, title, description, genre, category) must be provided and valid", apperrors.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", apperrors.ErrValidation)
	}

	folder := uploadFolder
	if in.FileType == models.FileTypeVideo {
		folder = videoFolder
	}
	url, key, err := s.store.Upload(ctx, folder, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: blob upload failed: %v", apperrors.ErrUpstream, err)
	}

	m := &models.Media{
		Title:       in.Title,
		Description: in.Description,
		FileType:    in.FileType,
		Genre:       in.Genre,
		Category:    in.Category,
		FileID:      key,
		FileURL:     url,
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}

	ev := events.MediaPublishedEvent{MediaID: m.ID.Hex(), Title: m.Title, FileType: m.FileType}
	if err := s.pub.MediaPublished(ctx, ev); err != nil {
		s.logger.Warnf("publish media.published: %v", err)
	}
	return m, nil
}

// Delete removes the blob first and only then the catalog record, so a
// record is never dropped while its blob still exists.
func (s *MediaService) Delete(ctx context.Context, fileID string) (*models.Media, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: fileId is required", apperrors.ErrValidation)
	}
	if err := s.store.Delete(ctx, fileID); err != nil {
		return nil, fmt.Errorf("%w: blob delete failed: %v", apperrors.ErrUpstream, err)
	}
	m, err := s.repo.DeleteByFileID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: media not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *MediaService) Edit(ctx context.Context, fileID, title, description, genre string) (*models.Media, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: fileId is required", apperrors.ErrValidation)
	}
	if title == "" || description == "" || genre == "" {
		return nil, fmt.Errorf("%w: title, description, and genre are required", apperrors.ErrValidation)
	}
	m, err := s.repo.FindByFileID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: file not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	m.Title = title
	m.Description = description
	m.Genre = genre
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MediaService) List(ctx context.Context, q repository.ListQuery) ([]models.Media, *Pagination, error) {
	if !models.ValidFileType(q.FileType) {
		return nil, nil, fmt.Errorf("%w: invalid fileType", apperrors.ErrValidation)
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	if q.Page < 1 {
		return nil, nil, fmt.Errorf("%w: page must be >= 1", apperrors.ErrValidation)
	}
	if q.Limit < 1 || q.Limit > maxPageSize {
		return nil, nil, fmt.Errorf("%w: limit must be between 1 and %d", apperrors.ErrValidation, maxPageSize)
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}
	return items, &Pagination{
		Total:       total,
		TotalPages:  pages,
		CurrentPage: q.Page,
		PageSize:    q.Limit,
	}, nil
}

// Download returns the stored URL verbatim; no signed URL generation.
func (s *MediaService) Download(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: _id is required", apperrors.ErrValidation)
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: file not found", apperrors.ErrNotFound)
		}
		return "", err
	}
	if m.FileURL == "" {
		return "", fmt.Errorf("%w: download URL not available", apperrors.ErrValidation)
	}
	return m.FileURL, nil
}

func (s *MediaService) Details(ctx context.Context, id string) (*models.Media, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: _id is required", apperrors.ErrValidation)
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: file not found", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}
