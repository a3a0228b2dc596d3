package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName           string        `mapstructure:"SERVICE_NAME"`
	HTTPPort              string        `mapstructure:"HTTP_PORT"`
	GRPCPort              string        `mapstructure:"GRPC_PORT"`
	PrometheusMetricsPort string        `mapstructure:"PROMETHEUS_METRICS_PORT"`
	ShutdownTimeout       time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddress     string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int           `mapstructure:"REDIS_DB"`
	PropertyCacheTTL time.Duration `mapstructure:"PROPERTY_CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`

	MaxUploadBytes       int64 `mapstructure:"MAX_UPLOAD_BYTES"`
	MaxImagesPerProperty int   `mapstructure:"MAX_IMAGES_PER_PROPERTY"`

	AdminPassword     string        `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	AdminTokenTTL     time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`

	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUsername    string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	SMTPSenderEmail string `mapstructure:"SMTP_SENDER_EMAIL"`
	NotifyEmail     string `mapstructure:"NOTIFY_EMAIL"`

	PhoneRegion       string `mapstructure:"PHONE_DEFAULT_REGION"`
	ContactRatePerMin int    `mapstructure:"CONTACT_RATE_PER_MINUTE"`
	LoginRatePerMin   int    `mapstructure:"LOGIN_RATE_PER_MINUTE"`
	ActivityLimit     int64  `mapstructure:"ACTIVITY_DEFAULT_LIMIT"`

	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var defaults = map[string]interface{}{
	"SERVICE_NAME":            "hbestate",
	"HTTP_PORT":               "8080",
	"GRPC_PORT":               "50052",
	"PROMETHEUS_METRICS_PORT": "9092",
	"SHUTDOWN_TIMEOUT":        "15s",

	"MONGO_URI":      "mongodb://localhost:27017",
	"MONGO_DATABASE": "hbestate",

	"REDIS_ADDRESS":      "localhost:6379",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           0,
	"PROPERTY_CACHE_TTL": "5m",

	"NATS_URL": "nats://localhost:4222",

	"MINIO_ENDPOINT":   "localhost:9000",
	"MINIO_ACCESS_KEY": "minioadmin",
	"MINIO_SECRET_KEY": "minioadmin",
	"MINIO_BUCKET":     "property-images",
	"MINIO_USE_SSL":    false,
	"MINIO_PUBLIC_URL": "",

	"MAX_UPLOAD_BYTES":        5 << 20,
	"MAX_IMAGES_PER_PROPERTY": 10,

	"ADMIN_PASSWORD":      "",
	"ADMIN_PASSWORD_HASH": "",
	"JWT_SECRET":          "",
	"ADMIN_TOKEN_TTL":     "12h",

	"SMTP_HOST":         "",
	"SMTP_PORT":         587,
	"SMTP_USERNAME":     "",
	"SMTP_PASSWORD":     "",
	"SMTP_SENDER_EMAIL": "",
	"NOTIFY_EMAIL":      "",

	"PHONE_DEFAULT_REGION":    "IN",
	"CONTACT_RATE_PER_MINUTE": 5,
	"LOGIN_RATE_PER_MINUTE":   5,
	"ACTIVITY_DEFAULT_LIMIT":  50,

	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		appLogger.Debug("No .env file loaded, relying on OS environment variables", zap.Error(err))
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("minio_endpoint", cfg.MinioEndpoint),
		zap.String("minio_bucket", cfg.MinioBucket),
		zap.Bool("smtp_enabled", cfg.SMTPEnabled()),
		zap.Bool("jwt_secret_present", cfg.JWTSecret != ""),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGO_DATABASE is required"))
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		errs = append(errs, errors.New("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if c.MaxImagesPerProperty <= 0 {
		errs = append(errs, errors.New("MAX_IMAGES_PER_PROPERTY must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// SMTPEnabled reports whether contact queries are mailed to the operator.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}
