package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const envFilePath = "./config/.env"

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string        `env:"HTTP_ADDR" env-default:":8080"`
	MongoURI           string        `env:"MONGO_URI" env-default:"mongodb://mongo:27017"`
	MongoDatabase      string        `env:"MONGO_DB" env-default:"feedbackpro"`
	FeedbackCollection string        `env:"FEEDBACK_COLLECTION" env-default:"feedback_submissions"`
	Timeout            time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	Timezone           string        `env:"TIMEZONE" env-default:"UTC"`
	AllowedOrigins     []string      `env:"API_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`

	JWTSecret          string `env:"AUTH_JWT_SECRET"`
	JWTIssuer          string `env:"AUTH_JWT_ISSUER" env-default:"feedbackpro-auth"`
	SecondaryJWTSecret string `env:"AUTH_SECONDARY_JWT_SECRET"`
	SecondaryJWTIssuer string `env:"AUTH_SECONDARY_JWT_ISSUER"`
	JWTAudience        string `env:"AUTH_JWT_AUDIENCE"`

	ContactEmailDomain string `env:"CONTACT_EMAIL_DOMAIN" env-default:"gmail.com"`

	S3Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:""`
	S3Bucket          string `env:"S3_BUCKET" env-default:"feedback-images"`
	MediaBaseURL      string `env:"MEDIA_BASE_URL"`
	MaxUploadBytes    int64  `env:"MAX_UPLOAD_BYTES" env-default:"20971520"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	DeleteLockTTL time.Duration `env:"DELETE_LOCK_TTL" env-default:"1m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" env-default:"feedback-events"`
}

// New reads ./config/.env when it exists and falls back to the process environment.
func New() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(envFilePath, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// JWTConfigs returns every configured issuer/secret pair, primary first.
func (c *Config) JWTConfigs() []JWTConfig {
	var configs []JWTConfig
	if secret := strings.TrimSpace(c.JWTSecret); secret != "" {
		configs = append(configs, JWTConfig{Issuer: strings.TrimSpace(c.JWTIssuer), Secret: []byte(secret)})
	}
	if secret := strings.TrimSpace(c.SecondaryJWTSecret); secret != "" {
		configs = append(configs, JWTConfig{Issuer: strings.TrimSpace(c.SecondaryJWTIssuer), Secret: []byte(secret)})
	}
	return configs
}

func (c *Config) normalize() error {
	if len(c.JWTConfigs()) == 0 {
		return errors.New("JWT secrets not configured. Set AUTH_JWT_SECRET or AUTH_SECONDARY_JWT_SECRET")
	}

	c.ContactEmailDomain = strings.TrimPrefix(strings.TrimSpace(c.ContactEmailDomain), "@")
	if c.ContactEmailDomain == "" {
		return errors.New("CONTACT_EMAIL_DOMAIN must not be empty")
	}

	c.S3Bucket = strings.TrimSpace(c.S3Bucket)
	if strings.TrimSpace(c.S3Endpoint) != "" && c.S3Bucket == "" {
		return errors.New("S3_BUCKET must be configured when S3_ENDPOINT is set")
	}

	c.MediaBaseURL = strings.TrimRight(strings.TrimSpace(c.MediaBaseURL), "/")
	if c.MediaBaseURL == "" && strings.TrimSpace(c.S3Endpoint) != "" {
		c.MediaBaseURL = strings.TrimRight(strings.TrimSpace(c.S3Endpoint), "/") + "/" + c.S3Bucket
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	c.AllowedOrigins = trimList(c.AllowedOrigins)
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	c.KafkaBrokers = trimList(c.KafkaBrokers)
	return nil
}

func trimList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
