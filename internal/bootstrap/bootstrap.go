package bootstrap

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fathima-sithara/media-vault/internal/config"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
)

// EnsureIndexes creates the unique and query indexes the collections rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	media := db.Collection("media")
	_, err = media.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fileId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "fileType", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "views", Value: -1}}},
	})
	if err != nil {
		return err
	}

	admins := db.Collection("admins")
	_, err = admins.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// SeedAdmin creates the configured admin account if it does not exist yet.
func SeedAdmin(ctx context.Context, admins repository.AdminRepository, cfg config.AdminConf, logger *zap.SugaredLogger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("no admin account configured; admin routes will be unreachable")
		return nil
	}
	if _, err := admins.FindByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	username := cfg.Username
	if username == "" {
		username = "admin"
	}
	a := &models.Admin{
		Username: username,
		Email:    cfg.Email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := admins.Create(ctx, a); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil
		}
		return err
	}
	logger.Infof("seeded admin account %s", cfg.Email)
	return nil
}
