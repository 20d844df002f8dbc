package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	Auth0 Auth0Config
	AWS   AWSConfig

	Tables TableConfig

	EvidenceBucket string
	CORSOrigin     string
}

type Auth0Config struct {
	Domain      string
	Audience    string
	JWKSTimeout time.Duration
}

type AWSConfig struct {
	Region           string
	DynamoDBEndpoint string
	S3Endpoint       string
	MaxAttempts      int
}

type TableConfig struct {
	Deliverables   string
	Metrics        string
	Meetings       string
	ActionItems    string
	Updates        string
	SampleProjects string
	Users          string
	Counters       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	jwksTimeout, err := time.ParseDuration(getEnv("JWKS_TIMEOUT", "10s"))
	if err != nil {
		jwksTimeout = 10 * time.Second
	}

	maxAttempts, err := strconv.Atoi(getEnv("AWS_MAX_ATTEMPTS", "3"))
	if err != nil || maxAttempts < 1 {
		maxAttempts = 3
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		Auth0: Auth0Config{
			Domain:      getEnvOrPanic("AUTH0_DOMAIN"),
			Audience:    getEnvOrPanic("AUTH0_AUDIENCE"),
			JWKSTimeout: jwksTimeout,
		},

		AWS: AWSConfig{
			Region:           getEnv("AWS_REGION", "us-east-2"),
			DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
			S3Endpoint:       getEnv("S3_ENDPOINT", ""),
			MaxAttempts:      maxAttempts,
		},

		Tables: TableConfig{
			Deliverables:   getEnv("DELIVERABLES_TABLE", "portal-dev-deliverables"),
			Metrics:        getEnv("METRICS_TABLE", "portal-dev-metrics"),
			Meetings:       getEnv("MEETINGS_TABLE", "portal-dev-meetings"),
			ActionItems:    getEnv("ACTION_ITEMS_TABLE", "turbotech-dev-action-items"),
			Updates:        getEnv("UPDATES_TABLE", "turbotech-dev-updates"),
			SampleProjects: getEnv("SAMPLE_PROJECTS_TABLE", "portal-dev-sample-projects"),
			Users:          getEnv("USERS_TABLE", "turbotech-dev-users"),
			Counters:       getEnv("COUNTERS_TABLE", "portal-dev-counters"),
		},

		EvidenceBucket: getEnv("EVIDENCE_BUCKET", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", ""),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Issuer is the token issuer the identity provider stamps into access tokens.
func (a Auth0Config) Issuer() string {
	return "https://" + a.Domain + "/"
}

func (a Auth0Config) JWKSURL() string {
	return "https://" + a.Domain + "/.well-known/jwks.json"
}

// CORSOrigins lists the browser origins allowed to call the API. A "*"
// CORS_ORIGIN opens the API to every origin.
func (c *Config) CORSOrigins() []string {
	if c.CORSOrigin == "*" {
		return []string{"*"}
	}
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:3001",
		"http://127.0.0.1:3001",
	}
	if c.CORSOrigin != "" {
		origins = append(origins, c.CORSOrigin)
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
