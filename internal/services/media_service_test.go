package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/apperrors"
	"github.com/fathima-sithara/media-vault/internal/events"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
)

type recordingPublisher struct {
	published []events.MediaPublishedEvent
}

func (p *recordingPublisher) MediaPublished(_ context.Context, ev events.MediaPublishedEvent) error {
	p.published = append(p.published, ev)
	return nil
}
func (p *recordingPublisher) Close() error { return nil }

func newMediaService(repo *fakeMediaRepo, blob *fakeBlob) (*MediaService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewMediaService(repo, blob, pub, zap.NewNop().Sugar()), pub
}

func validUpload() UploadInput {
	return UploadInput{
		FileType:    "video",
		Title:       "The Test",
		Description: "a film about tests",
		Genre:       "drama",
		Category:    "movie",
	}
}

func TestUpload(t *testing.T) {
	repo := &fakeMediaRepo{}
	blob := newFakeBlob()
	svc, pub := newMediaService(repo, blob)
	ctx := context.Background()

	m, err := svc.Upload(ctx, validUpload(), "test.mp4", "video/mp4", []byte("data"))
	require.NoError(t, err)
	assert.NotEmpty(t, m.FileURL)
	assert.NotEmpty(t, m.FileID)
	assert.Equal(t, "video", m.FileType)
	assert.Equal(t, "movie", m.Category)
	assert.Contains(t, m.FileID, "videos/", "video uploads are keyed under videos/")

	require.Len(t, pub.published, 1)
	assert.Equal(t, m.ID.Hex(), pub.published[0].MediaID)
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UploadInput)
	}{
		{"missing title", func(in *UploadInput) { in.Title = "" }},
		{"missing description", func(in *UploadInput) { in.Description = "" }},
		{"missing genre", func(in *UploadInput) { in.Genre = "" }},
		{"missing category", func(in *UploadInput) { in.Category = "" }},
		{"missing fileType", func(in *UploadInput) { in.FileType = "" }},
		{"bad fileType", func(in *UploadInput) { in.FileType = "image" }},
		{"bad category", func(in *UploadInput) { in.Category = "podcast" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMediaRepo{}
			svc, _ := newMediaService(repo, newFakeBlob())
			in := validUpload()
			tt.mutate(&in)
			_, err := svc.Upload(context.Background(), in, "f.mp4", "video/mp4", []byte("x"))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Empty(t, repo.items)
		})
	}
}

func TestUploadNoFile(t *testing.T) {
	svc, _ := newMediaService(&fakeMediaRepo{}, newFakeBlob())
	_, err := svc.Upload(context.Background(), validUpload(), "", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUploadBlobFailureLeavesNoRecord(t *testing.T) {
	repo := &fakeMediaRepo{}
	blob := newFakeBlob()
	blob.failUpload = true
	svc, pub := newMediaService(repo, blob)

	_, err := svc.Upload(context.Background(), validUpload(), "f.mp4", "video/mp4", []byte("x"))
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Empty(t, repo.items, "no orphan catalog record on blob failure")
	assert.Empty(t, pub.published)
}

func TestDelete(t *testing.T) {
	repo := &fakeMediaRepo{}
	blob := newFakeBlob()
	svc, _ := newMediaService(repo, blob)
	ctx := context.Background()

	m, err := svc.Upload(ctx, validUpload(), "f.mp4", "video/mp4", []byte("x"))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, m.FileID)
	require.NoError(t, err)
	assert.Equal(t, m.FileID, deleted.FileID)
	assert.Contains(t, blob.deleted, m.FileID)

	_, err = svc.Details(ctx, m.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteBlobFailureKeepsRecord(t *testing.T) {
	repo := &fakeMediaRepo{}
	blob := newFakeBlob()
	svc, _ := newMediaService(repo, blob)
	ctx := context.Background()

	m, err := svc.Upload(ctx, validUpload(), "f.mp4", "video/mp4", []byte("x"))
	require.NoError(t, err)

	blob.failDelete = true
	_, err = svc.Delete(ctx, m.FileID)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	// record untouched: never drop metadata for a blob that still exists
	got, err := svc.Details(ctx, m.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, m.FileID, got.FileID)
}

func TestDeleteValidationAndNotFound(t *testing.T) {
	svc, _ := newMediaService(&fakeMediaRepo{}, newFakeBlob())
	ctx := context.Background()

	_, err := svc.Delete(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Delete(ctx, "videos/unknown")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEdit(t *testing.T) {
	repo := &fakeMediaRepo{}
	svc, _ := newMediaService(repo, newFakeBlob())
	ctx := context.Background()

	m, err := svc.Upload(ctx, validUpload(), "f.mp4", "video/mp4", []byte("x"))
	require.NoError(t, err)

	_, err = svc.Edit(ctx, "", "t", "d", "g")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Edit(ctx, m.FileID, "t", "", "g")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Edit(ctx, "videos/unknown", "t", "d", "g")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	updated, err := svc.Edit(ctx, m.FileID, "New Title", "new desc", "comedy")
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)

	got, err := svc.Details(ctx, m.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "comedy", got.Genre)
}

func seedVideos(repo *fakeMediaRepo, n int, genre string) {
	base := time.Now().UTC()
	for i := 0; i < n; i++ {
		repo.items = append(repo.items, models.Media{
			ID:        mustObjectID(),
			Title:     fmt.Sprintf("video %02d", i),
			FileType:  "video",
			Genre:     genre,
			FileID:    fmt.Sprintf("videos/%s-%02d", genre, i),
			FileURL:   "https://cdn.test/v",
			Views:     int64(i * 10),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestListPaginationAndSort(t *testing.T) {
	repo := &fakeMediaRepo{}
	svc, _ := newMediaService(repo, newFakeBlob())
	seedVideos(repo, 12, "drama")
	seedVideos(repo, 3, "comedy")

	items, p, err := svc.List(context.Background(), repository.ListQuery{
		FileType: "video",
		Genre:    "drama",
		SortBy:   repository.SortByViews,
		Page:     2,
		Limit:    5,
	})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, int64(12), p.Total)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 5, p.PageSize)

	// items 6-10 of the filtered set, descending views
	for i := 0; i < len(items)-1; i++ {
		assert.GreaterOrEqual(t, items[i].Views, items[i+1].Views)
		assert.Equal(t, "drama", items[i].Genre)
	}
	assert.Equal(t, int64(60), items[0].Views)
	assert.Equal(t, int64(20), items[4].Views)
}

func TestListBounds(t *testing.T) {
	svc, _ := newMediaService(&fakeMediaRepo{}, newFakeBlob())
	ctx := context.Background()

	_, _, err := svc.List(ctx, repository.ListQuery{FileType: "video", Page: -1, Limit: 5})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = svc.List(ctx, repository.ListQuery{FileType: "video", Page: 1, Limit: 500})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = svc.List(ctx, repository.ListQuery{FileType: "image", Page: 1, Limit: 5})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// zero values fall back to defaults
	items, p, err := svc.List(ctx, repository.ListQuery{FileType: "video"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.PageSize)
}

func TestDownload(t *testing.T) {
	repo := &fakeMediaRepo{}
	svc, _ := newMediaService(repo, newFakeBlob())
	ctx := context.Background()

	m, err := svc.Upload(ctx, validUpload(), "f.mp4", "video/mp4", []byte("x"))
	require.NoError(t, err)

	url, err := svc.Download(ctx, m.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, m.FileURL, url, "stored URL is returned verbatim")

	_, err = svc.Download(ctx, mustObjectID().Hex())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.items = append(repo.items, models.Media{ID: mustObjectID(), FileType: "video"})
	_, err = svc.Download(ctx, repo.items[len(repo.items)-1].ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
