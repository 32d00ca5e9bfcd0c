package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Session  SessionConfig  `mapstructure:"session"`
	Photo    PhotoConfig    `mapstructure:"photo"`
	Export   ExportConfig   `mapstructure:"export"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	InternalSecret string   `mapstructure:"internal_secret"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port for go-redis and asynq.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`

	// ExportRetentionDays 为 exports/ 前缀设置过期规则，0 表示不设置。
	ExportRetentionDays int `mapstructure:"export_retention_days"`
}

// SessionConfig controls editing-session tokens.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// PhotoConfig tunes the profile photo pipeline.
type PhotoConfig struct {
	MaxBytes       int64   `mapstructure:"max_bytes"`
	MinDimension   int     `mapstructure:"min_dimension"`
	Strict         bool    `mapstructure:"strict"`
	MarginRatio    float64 `mapstructure:"margin_ratio"`
	UpwardBias     float64 `mapstructure:"upward_bias"`
	OutputSide     int     `mapstructure:"output_side"`
	CascadePath    string  `mapstructure:"cascade_path"`
	MinFaceQuality float64 `mapstructure:"min_face_quality"`
	UploadsPerHour int     `mapstructure:"uploads_per_hour"`
	ClamdAddr      string  `mapstructure:"clamd_addr"`
}

// ExportConfig describes the printed page and the rasterization settings.
type ExportConfig struct {
	PageWidthMM  float64       `mapstructure:"page_width_mm"`
	PageHeightMM float64       `mapstructure:"page_height_mm"`
	MarginMM     float64       `mapstructure:"margin_mm"`
	PaddingMM    float64       `mapstructure:"padding_mm"`
	PixelWidth   int           `mapstructure:"pixel_width"`
	PixelHeight  int           `mapstructure:"pixel_height"`
	Scale        float64       `mapstructure:"scale"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetry     int           `mapstructure:"max_retry"`
	PresignTTL   time.Duration `mapstructure:"presign_ttl"`
	ChromiumBin  string        `mapstructure:"chromium_bin"`
	Workers      int           `mapstructure:"workers"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration from environment variables (with optional defaults).
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("note: .env file not found, using process environment")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.AllowedOrigins = splitOrigins(cfg.API.AllowedOrigins)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "cvbuilder")
	v.SetDefault("database.user", "cvbuilder")
	v.SetDefault("database.password", "cvbuilder")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "cv-exports")
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("minio.export_retention_days", 7)
	v.SetDefault("session.ttl", 24*time.Hour)

	photo := DefaultPhoto()
	v.SetDefault("photo.max_bytes", photo.MaxBytes)
	v.SetDefault("photo.min_dimension", photo.MinDimension)
	v.SetDefault("photo.strict", photo.Strict)
	v.SetDefault("photo.margin_ratio", photo.MarginRatio)
	v.SetDefault("photo.upward_bias", photo.UpwardBias)
	v.SetDefault("photo.output_side", photo.OutputSide)
	v.SetDefault("photo.cascade_path", photo.CascadePath)
	v.SetDefault("photo.min_face_quality", photo.MinFaceQuality)
	v.SetDefault("photo.uploads_per_hour", photo.UploadsPerHour)

	export := DefaultExport()
	v.SetDefault("export.page_width_mm", export.PageWidthMM)
	v.SetDefault("export.page_height_mm", export.PageHeightMM)
	v.SetDefault("export.margin_mm", export.MarginMM)
	v.SetDefault("export.padding_mm", export.PaddingMM)
	v.SetDefault("export.pixel_width", export.PixelWidth)
	v.SetDefault("export.pixel_height", export.PixelHeight)
	v.SetDefault("export.scale", export.Scale)
	v.SetDefault("export.timeout", export.Timeout)
	v.SetDefault("export.max_retry", export.MaxRetry)
	v.SetDefault("export.presign_ttl", export.PresignTTL)
	v.SetDefault("export.workers", export.Workers)
}

// DefaultPhoto returns the photo settings used when nothing overrides them.
func DefaultPhoto() PhotoConfig {
	return PhotoConfig{
		MaxBytes:       2 * 1024 * 1024,
		MinDimension:   300,
		Strict:         true,
		MarginRatio:    1.2,
		UpwardBias:     0.6,
		OutputSide:     250,
		CascadePath:    "models/facefinder",
		MinFaceQuality: 5.0,
		UploadsPerHour: 30,
	}
}

// DefaultExport returns A4 export settings: 794×1123 px at scale 2, 7.5mm page margin, 10mm padding.
func DefaultExport() ExportConfig {
	return ExportConfig{
		PageWidthMM:  210,
		PageHeightMM: 297,
		MarginMM:     7.5,
		PaddingMM:    10,
		PixelWidth:   794,
		PixelHeight:  1123,
		Scale:        2,
		Timeout:      90 * time.Second,
		MaxRetry:     3,
		PresignTTL:   15 * time.Minute,
		Workers:      4,
	}
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                    "API_PORT",
		"api.internal_secret":         "INTERNAL_API_SECRET",
		"api.allowed_origins":         "API_ALLOWED_ORIGINS",
		"database.host":               "DATABASE_HOST",
		"database.port":               "DATABASE_PORT",
		"database.name":               "POSTGRES_DB",
		"database.user":               "POSTGRES_USER",
		"database.password":           "POSTGRES_PASSWORD",
		"database.sslmode":            "DATABASE_SSLMODE",
		"redis.host":                  "REDIS_HOST",
		"redis.port":                  "REDIS_PORT",
		"minio.endpoint":              "MINIO_ENDPOINT",
		"minio.public_endpoint":       "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":         "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":     "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":               "MINIO_USE_SSL",
		"minio.bucket":                "MINIO_BUCKET",
		"minio.region":                "MINIO_REGION",
		"minio.bucket_lookup":         "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":    "MINIO_AUTO_CREATE_BUCKET",
		"minio.export_retention_days": "MINIO_EXPORT_RETENTION_DAYS",
		"session.secret":              "SESSION_SECRET",
		"session.ttl":                 "SESSION_TTL",
		"photo.max_bytes":             "PHOTO_MAX_BYTES",
		"photo.min_dimension":         "PHOTO_MIN_DIMENSION",
		"photo.strict":                "PHOTO_STRICT",
		"photo.margin_ratio":          "PHOTO_MARGIN_RATIO",
		"photo.upward_bias":           "PHOTO_UPWARD_BIAS",
		"photo.output_side":           "PHOTO_OUTPUT_SIDE",
		"photo.cascade_path":          "PHOTO_CASCADE_PATH",
		"photo.min_face_quality":      "PHOTO_MIN_FACE_QUALITY",
		"photo.uploads_per_hour":      "PHOTO_UPLOADS_PER_HOUR",
		"photo.clamd_addr":            "CLAMD_ADDR",
		"export.page_width_mm":        "EXPORT_PAGE_WIDTH_MM",
		"export.page_height_mm":       "EXPORT_PAGE_HEIGHT_MM",
		"export.margin_mm":            "EXPORT_MARGIN_MM",
		"export.padding_mm":           "EXPORT_PADDING_MM",
		"export.pixel_width":          "EXPORT_PIXEL_WIDTH",
		"export.pixel_height":         "EXPORT_PIXEL_HEIGHT",
		"export.scale":                "EXPORT_SCALE",
		"export.timeout":              "EXPORT_TIMEOUT",
		"export.max_retry":            "EXPORT_MAX_RETRY",
		"export.presign_ttl":          "EXPORT_PRESIGN_TTL",
		"export.chromium_bin":         "CHROMIUM_BIN",
		"export.workers":              "WORKER_CONCURRENCY",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

// 环境变量里的 origins 以逗号分隔，viper 只会给出单个元素。
func splitOrigins(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if len(strings.TrimSpace(cfg.Session.Secret)) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if err := ValidatePhoto(cfg.Photo); err != nil {
		return err
	}
	return ValidateExport(cfg.Export)
}

// ValidatePhoto checks the photo settings on their own so the CLI can reuse it.
func ValidatePhoto(p PhotoConfig) error {
	if p.MaxBytes <= 0 {
		return errors.New("photo max bytes must be positive")
	}
	if p.Strict && p.MinDimension <= 0 {
		return errors.New("photo min dimension must be positive in strict mode")
	}
	if p.MarginRatio < 0 {
		return errors.New("photo margin ratio must not be negative")
	}
	if p.UpwardBias < 0 {
		return errors.New("photo upward bias must not be negative")
	}
	if p.OutputSide <= 0 {
		return errors.New("photo output side must be positive")
	}
	return nil
}

// ValidateExport checks the page geometry and rasterization settings.
func ValidateExport(e ExportConfig) error {
	if e.PageWidthMM <= 0 || e.PageHeightMM <= 0 {
		return errors.New("export page size must be positive")
	}
	if e.MarginMM < 0 || 2*e.MarginMM >= e.PageWidthMM || 2*e.MarginMM >= e.PageHeightMM {
		return errors.New("export margin must leave a positive content box")
	}
	if e.PixelWidth <= 0 || e.PixelHeight <= 0 {
		return errors.New("export pixel size must be positive")
	}
	if e.Scale <= 0 {
		return errors.New("export scale must be positive")
	}
	return nil
}
