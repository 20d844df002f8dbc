package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH0_DOMAIN", "portal.us.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.portal.example")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.Auth0.JWKSTimeout)
	assert.Equal(t, "us-east-2", cfg.AWS.Region)
	assert.Equal(t, 3, cfg.AWS.MaxAttempts)
	assert.Empty(t, cfg.AWS.DynamoDBEndpoint)
	assert.Equal(t, "portal-dev-deliverables", cfg.Tables.Deliverables)
	assert.Equal(t, "portal-dev-metrics", cfg.Tables.Metrics)
	assert.Equal(t, "portal-dev-meetings", cfg.Tables.Meetings)
	assert.Equal(t, "turbotech-dev-action-items", cfg.Tables.ActionItems)
	assert.Equal(t, "turbotech-dev-updates", cfg.Tables.Updates)
	assert.Equal(t, "portal-dev-sample-projects", cfg.Tables.SampleProjects)
	assert.Equal(t, "turbotech-dev-users", cfg.Tables.Users)
	assert.Equal(t, "portal-dev-counters", cfg.Tables.Counters)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("JWKS_TIMEOUT", "3s")
	t.Setenv("AWS_MAX_ATTEMPTS", "5")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("MEETINGS_TABLE", "portal-prod-meetings")
	t.Setenv("EVIDENCE_BUCKET", "portal-evidence")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.Auth0.JWKSTimeout)
	assert.Equal(t, 5, cfg.AWS.MaxAttempts)
	assert.Equal(t, "http://localhost:8000", cfg.AWS.DynamoDBEndpoint)
	assert.Equal(t, "portal-prod-meetings", cfg.Tables.Meetings)
	assert.Equal(t, "portal-evidence", cfg.EvidenceBucket)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWKS_TIMEOUT", "soon")
	t.Setenv("AWS_MAX_ATTEMPTS", "zero")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Auth0.JWKSTimeout)
	assert.Equal(t, 3, cfg.AWS.MaxAttempts)
}

func TestLoad_MissingDomainPanics(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "")
	t.Setenv("AUTH0_AUDIENCE", "https://api.portal.example")

	assert.Panics(t, func() { _, _ = Load() })
}

func TestAuth0Config_Endpoints(t *testing.T) {
	a := Auth0Config{Domain: "portal.us.auth0.com"}

	assert.Equal(t, "https://portal.us.auth0.com/", a.Issuer())
	assert.Equal(t, "https://portal.us.auth0.com/.well-known/jwks.json", a.JWKSURL())
}

func TestConfig_CORSOrigins(t *testing.T) {
	cfg := &Config{}
	assert.Len(t, cfg.CORSOrigins(), 4)

	cfg.CORSOrigin = "https://portal.example.com"
	origins := cfg.CORSOrigins()
	assert.Len(t, origins, 5)
	assert.Contains(t, origins, "https://portal.example.com")

	cfg.CORSOrigin = "*"
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
}
