package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConf struct {
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

type S3Conf struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConf struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	AuthLimit int    `mapstructure:"auth_limit_per_minute"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type AdminConf struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongodb"`
	JWT   JWTConf   `mapstructure:"jwt"`
	S3    S3Conf    `mapstructure:"s3"`
	Redis RedisConf `mapstructure:"redis"`
	Kafka KafkaConf `mapstructure:"kafka"`
	Admin AdminConf `mapstructure:"admin"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
	S3Timeout       time.Duration
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("mongodb.database", "media_vault")
	v.SetDefault("jwt.ttl_minutes", 60)
	v.SetDefault("s3.timeout_seconds", 30)
	v.SetDefault("redis.auth_limit_per_minute", 20)
	v.SetDefault("kafka.topic", "media.published")
	v.SetDefault("kafka.group_id", "media-vault-notifier")

	// keys without defaults must be bound for Unmarshal to see env values
	for _, key := range []string{
		"mongodb.uri", "jwt.secret",
		"s3.region", "s3.bucket", "s3.endpoint", "s3.access_key", "s3.secret_key",
		"redis.addr", "redis.password", "redis.db",
		"kafka.brokers",
		"admin.username", "admin.email", "admin.password",
	} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.S3.Bucket == "" {
		return nil, errors.New("S3_BUCKET is required")
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	cfg.S3Timeout = time.Duration(cfg.S3.TimeoutSeconds) * time.Second
	return &cfg, nil
}
