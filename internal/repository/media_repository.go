package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/media-vault/internal/models"
)

const (
	SortByViews     = "views"
	SortByCreatedAt = "createdAt"
)

type ListQuery struct {
	FileType string
	Genre    string
	Title    string // case-insensitive substring
	SortBy   string // views | createdAt (default)
	Page     int
	Limit    int
}

type MediaRepository interface {
	Insert(ctx context.Context, m *models.Media) error
	FindByID(ctx context.Context, id string) (*models.Media, error)
	FindByFileID(ctx context.Context, fileID string) (*models.Media, error)
	Update(ctx context.Context, m *models.Media) error
	DeleteByFileID(ctx context.Context, fileID string) (*models.Media, error)
	List(ctx context.Context, q ListQuery) ([]models.Media, int64, error)
}

type mongoMediaRepo struct {
	col *mongo.Collection
}

func NewMongoMediaRepo(db *mongo.Database) MediaRepository {
	return &mongoMediaRepo{col: db.Collection("media")}
}

func (r *mongoMediaRepo) Insert(ctx context.Context, m *models.Media) error {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *mongoMediaRepo) FindByID(ctx context.Context, id string) (*models.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var m models.Media
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mongoMediaRepo) FindByFileID(ctx context.Context, fileID string) (*models.Media, error) {
	var m models.Media
	err := r.col.FindOne(ctx, bson.M{"fileId": fileID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mongoMediaRepo) Update(ctx context.Context, m *models.Media) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, m.ID, bson.M{"$set": bson.M{
		"title":       m.Title,
		"description": m.Description,
		"genre":       m.Genre,
		"updatedAt":   m.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoMediaRepo) DeleteByFileID(ctx context.Context, fileID string) (*models.Media, error) {
	var m models.Media
	err := r.col.FindOneAndDelete(ctx, bson.M{"fileId": fileID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mongoMediaRepo) List(ctx context.Context, q ListQuery) ([]models.Media, int64, error) {
	filter := bson.M{"fileType": q.FileType}
	if q.Genre != "" {
		filter["genre"] = q.Genre
	}
	if q.Title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Title), Options: "i"}
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if q.SortBy == SortByViews {
		sort = bson.D{{Key: "views", Value: -1}}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(q.Page-1) * int64(q.Limit)
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(int64(q.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.Media{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
