package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "top-secret")
	t.Setenv("S3_ENDPOINT", "http://minio:9000/")
	t.Setenv("MEDIA_BASE_URL", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "feedback_submissions", cfg.FeedbackCollection)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "gmail.com", cfg.ContactEmailDomain)
	assert.Equal(t, "http://minio:9000/feedback-images", cfg.MediaBaseURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.DeleteLockTTL)

	jwtConfigs := cfg.JWTConfigs()
	require.Len(t, jwtConfigs, 1)
	assert.Equal(t, "feedbackpro-auth", jwtConfigs[0].Issuer)
	assert.Equal(t, []byte("top-secret"), jwtConfigs[0].Secret)
}

func TestNew_ListsAndDomain(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "a")
	t.Setenv("AUTH_SECONDARY_JWT_SECRET", "b")
	t.Setenv("AUTH_SECONDARY_JWT_ISSUER", "partner")
	t.Setenv("CONTACT_EMAIL_DOMAIN", "@example.org")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("MEDIA_BASE_URL", "https://cdn.example.org/feedback/")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "example.org", cfg.ContactEmailDomain)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://cdn.example.org/feedback", cfg.MediaBaseURL)
	assert.Len(t, cfg.JWTConfigs(), 2)
	assert.Equal(t, "partner", cfg.JWTConfigs()[1].Issuer)
}

func TestNew_MissingSecrets(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_SECONDARY_JWT_SECRET", "")

	cfg, err := New()
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
