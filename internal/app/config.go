package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/platform/envutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Audience string `env:"AUDIENCE" envDefault:"http://localhost:8080"`
	Version  string `env:"APP_VERSION" envDefault:"dev"`
	LogMode  string `env:"LOG_MODE" envDefault:"development"`

	DBDriver         string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresName     string `env:"POSTGRES_NAME" envDefault:"profile"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"profile.db"`

	EnrichmentURL string `env:"MAKEAPI"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"profile_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	CookieDomain  string        `env:"COOKIE_DOMAIN"`
	ForceSSL      bool          `env:"FORCE_SSL"`
	CSPReportURI  string        `env:"CSP_LOGGER"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:","`
	StaticDir     string        `env:"STATIC_DIR"`
	Compress      bool          `env:"COMPRESS" envDefault:"true"`

	ReservedUsername string `env:"RESERVED_USERNAME" envDefault:"reanimator"`

	BlobDriver        string `env:"BLOB_DRIVER" envDefault:"s3"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3PathStyle       bool   `env:"S3_PATH_STYLE"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	GCSBucket         string `env:"GCS_BUCKET"`
	GCSCDNDomain      string `env:"GCS_CDN_DOMAIN"`
	GCSCredentials    string `env:"GCS_CREDENTIALS"`
	ObjectStorageMode string `env:"OBJECT_STORAGE_MODE"`
	StorageEmulator   string `env:"STORAGE_EMULATOR_HOST"`
	MaxImageBytes     int64  `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`

	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	GeneratedCacheTTL time.Duration `env:"GENERATED_CACHE_TTL" envDefault:"10m"`

	StoreTimeout      time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	EnrichmentTimeout time.Duration `env:"ENRICHMENT_TIMEOUT" envDefault:"10s"`
	BlobTimeout       time.Duration `env:"BLOB_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	Otel observability.OtelConfig
}

// LoadConfig reads the environment, layered over CONFIG_FILE when set.
func LoadConfig(log *logger.Logger) (Config, error) {
	var cfg Config
	file := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if err := envutil.Parse(&cfg, file); err != nil {
		return Config{}, err
	}
	cfg.Otel.Version = cfg.Version
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if log != nil {
		log.Info("Configuration loaded",
			"config_file", file,
			"db_driver", cfg.DBDriver,
			"blob_driver", cfg.BlobDriver,
			"reserved_username", cfg.ReservedUsername,
			"generated_cache", cfg.RedisAddr != "",
			"force_ssl", cfg.ForceSSL,
		)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("missing SESSION_SECRET")
	}
	if strings.TrimSpace(c.EnrichmentURL) == "" {
		return fmt.Errorf("missing MAKEAPI")
	}
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER=%q (allowed: postgres, sqlite)", c.DBDriver)
	}
	switch strings.ToLower(strings.TrimSpace(c.BlobDriver)) {
	case "s3":
		if strings.TrimSpace(c.S3Bucket) == "" {
			return fmt.Errorf("BLOB_DRIVER=s3 requires S3_BUCKET")
		}
	case "gcs":
		if strings.TrimSpace(c.GCSBucket) == "" {
			return fmt.Errorf("BLOB_DRIVER=gcs requires GCS_BUCKET")
		}
	default:
		return fmt.Errorf("invalid BLOB_DRIVER=%q (allowed: s3, gcs)", c.BlobDriver)
	}
	if strings.TrimSpace(c.ReservedUsername) == "" {
		return fmt.Errorf("RESERVED_USERNAME must not be empty")
	}
	return nil
}

func (c Config) PostgresDSN() string {
	if dsn := strings.TrimSpace(c.DatabaseURL); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresName,
	)
}
