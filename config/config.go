package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	LogFile  string `envconfig:"LOG_FILE"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"` // postgres|sqlite
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"warranty_tracker"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/warranty.db"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"72h"`

	AWSRegion      string `envconfig:"AWS_REGION" default:"ap-south-1"`
	ReceiptStorage string `envconfig:"RECEIPT_STORAGE" default:"local"` // local|s3
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3Region       string `envconfig:"S3_REGION"`
	CloudFrontURL  string `envconfig:"CLOUDFRONT_URL"`
	SESEmail       string `envconfig:"SES_EMAIL"`
	SNSFCMArn      string `envconfig:"SNS_FCM_ARN"`

	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// WarrantySweepInterval drives the background re-evaluation; 0 disables it.
	WarrantySweepInterval time.Duration `envconfig:"WARRANTY_SWEEP_INTERVAL" default:"1h"`
}

// Load reads an optional .env file, then environment variables into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	switch c.ReceiptStorage {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when RECEIPT_STORAGE=s3")
		}
	default:
		return fmt.Errorf("RECEIPT_STORAGE must be local or s3, got %q", c.ReceiptStorage)
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// S3RegionOrDefault falls back to AWS_REGION when S3_REGION is unset.
func (c Config) S3RegionOrDefault() string {
	if c.S3Region != "" {
		return c.S3Region
	}
	return c.AWSRegion
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
