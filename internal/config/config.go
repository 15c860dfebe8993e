package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	WordPress WordPressConfig
	Generator GeneratorConfig
	Plan      PlanConfig
	MinIO     MinIOConfig
	Jobs      JobConfig
}

type AppConfig struct {
	Environment string
	Port        string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// WordPressConfig holds the outbound REST client timeouts. Reads stay
// short; post and media creation run against the write timeout.
type WordPressConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GeneratorConfig struct {
	URL     string
	Timeout time.Duration
}

// PlanConfig caps content creation. A limit of zero or below means
// unlimited (paid tiers).
type PlanConfig struct {
	Tier         string
	IdeaLimit    int
	ArticleLimit int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JobConfig struct {
	TaxonomyStaleAfter time.Duration
	BackoffWindow      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		},
		WordPress: WordPressConfig{
			ReadTimeout:  time.Duration(getEnvInt("WP_READ_TIMEOUT_SECONDS", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("WP_WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Generator: GeneratorConfig{
			URL:     getEnv("GENERATOR_URL", ""),
			Timeout: time.Duration(getEnvInt("GENERATOR_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Plan: PlanConfig{
			Tier:         getEnv("PLAN_TIER", "free"),
			IdeaLimit:    getEnvInt("PLAN_IDEA_LIMIT", 5),
			ArticleLimit: getEnvInt("PLAN_ARTICLE_LIMIT", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "pressroom-media"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Jobs: JobConfig{
			TaxonomyStaleAfter: time.Duration(getEnvInt("TAXONOMY_STALE_HOURS", 48)) * time.Hour,
			BackoffWindow:      time.Duration(getEnvInt("SITE_BACKOFF_MINUTES", 30)) * time.Minute,
		},
	}

	// Paid tiers are uncapped regardless of the limit envs.
	if cfg.Plan.Tier != "free" {
		cfg.Plan.IdeaLimit = 0
		cfg.Plan.ArticleLimit = 0
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that must not reach production.
func (c *Config) Validate() error {
	if c.App.Environment != "production" {
		return nil
	}

	if c.JWT.Secret == "" || c.JWT.Secret == "dev-secret-change-me" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST must be set in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
