package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fathima-sithara/media-vault/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type mongoAdminRepo struct {
	col *mongo.Collection
}

func NewMongoAdminRepo(db *mongo.Database) AdminRepository {
	return &mongoAdminRepo{col: db.Collection("admins")}
}

func (r *mongoAdminRepo) Create(ctx context.Context, a *models.Admin) error {
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *mongoAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
