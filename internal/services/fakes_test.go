package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
)

func mustObjectID() primitive.ObjectID { return primitive.NewObjectID() }

func hashForTest(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(b), err
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

type fakeUserRepo struct {
	users map[string]*models.User // hex id -> user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, e := range r.users {
		if e.Email == u.Email || e.Username == u.Username {
			return duplicateKeyErr()
		}
	}
	u.ID = primitive.NewObjectID()
	if u.Timestamp == 0 {
		u.Timestamp = time.Now().UnixMilli()
	}
	if u.Notifications == nil {
		u.Notifications = []models.Notification{}
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	stored, ok := r.users[u.ID.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	for id, e := range r.users {
		if id == u.ID.Hex() {
			continue
		}
		if e.Email == u.Email || e.Username == u.Username {
			return duplicateKeyErr()
		}
	}
	stored.Username = u.Username
	stored.Email = u.Email
	stored.ProfilePic = u.ProfilePic
	stored.ProfilePicID = u.ProfilePicID
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (r *fakeUserRepo) MarkAllNotificationsRead(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range u.Notifications {
		u.Notifications[i].Read = true
	}
	return nil
}

func (r *fakeUserRepo) PushNotificationToAll(_ context.Context, n models.Notification) error {
	for _, u := range r.users {
		u.Notifications = append(u.Notifications, n)
	}
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*models.Admin // email -> admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*models.Admin{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, a *models.Admin) error {
	if _, ok := r.admins[a.Email]; ok {
		return duplicateKeyErr()
	}
	a.ID = primitive.NewObjectID()
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	cp := *a
	r.admins[a.Email] = &cp
	return nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	a, ok := r.admins[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

type fakeMediaRepo struct {
	items []models.Media
}

func (r *fakeMediaRepo) Insert(_ context.Context, m *models.Media) error {
	m.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	r.items = append(r.items, *m)
	return nil
}

func (r *fakeMediaRepo) FindByID(_ context.Context, id string) (*models.Media, error) {
	for _, m := range r.items {
		if m.ID.Hex() == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMediaRepo) FindByFileID(_ context.Context, fileID string) (*models.Media, error) {
	for _, m := range r.items {
		if m.FileID == fileID {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMediaRepo) Update(_ context.Context, m *models.Media) error {
	for i := range r.items {
		if r.items[i].ID == m.ID {
			r.items[i].Title = m.Title
			r.items[i].Description = m.Description
			r.items[i].Genre = m.Genre
			r.items[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeMediaRepo) DeleteByFileID(_ context.Context, fileID string) (*models.Media, error) {
	for i := range r.items {
		if r.items[i].FileID == fileID {
			m := r.items[i]
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMediaRepo) List(_ context.Context, q repository.ListQuery) ([]models.Media, int64, error) {
	var filtered []models.Media
	for _, m := range r.items {
		if m.FileType != q.FileType {
			continue
		}
		if q.Genre != "" && m.Genre != q.Genre {
			continue
		}
		if q.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(q.Title)) {
			continue
		}
		filtered = append(filtered, m)
	}
	if q.SortBy == repository.SortByViews {
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Views > filtered[j].Views })
	} else {
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}
	total := int64(len(filtered))
	start := (q.Page - 1) * q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

type fakeBlob struct {
	uploads    map[string][]byte // key -> data
	deleted    []string
	failUpload bool
	failDelete bool
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{uploads: map[string][]byte{}}
}

func (b *fakeBlob) Upload(_ context.Context, folder, filename, _ string, data []byte) (string, string, error) {
	if b.failUpload {
		return "", "", fmt.Errorf("blob store down")
	}
	key := folder + "/" + filename
	b.uploads[key] = data
	return "https://cdn.test/" + key, key, nil
}

func (b *fakeBlob) Delete(_ context.Context, key string) error {
	if b.failDelete {
		return fmt.Errorf("blob store down")
	}
	b.deleted = append(b.deleted, key)
	return nil
}
