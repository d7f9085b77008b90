// Package config loads runtime configuration from YAML.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	sqlmysql "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort        = 2333
	defaultEnv         = "development"
	defaultDBHost      = "127.0.0.1"
	defaultDBPort      = 3306
	defaultDBUser      = "folio"
	defaultDBPassword  = "password"
	defaultDBName      = "folio_space"
	defaultDBCharset   = "utf8mb4"
	defaultRedisHost   = "localhost"
	defaultRedisPort   = 6379
	defaultJWTSecret   = "folio-core-secret-change-me"
	defaultUploadSize  = 10
	defaultS3Region    = "auto"
	defaultStaticDir   = "static"
	defaultWebDir      = "web"
	defaultLogsDir     = "logs"
	EnvStaticDirEnvVar = "FOLIO_STATIC_DIR"
)

var defaultUploadExtensions = []string{"png", "jpg", "jpeg", "gif", "webp", "pdf", "doc", "docx"}

// AppConfig is the full runtime configuration.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Paths          PathsConfig    `yaml:"paths"`
	Upload         UploadConfig   `yaml:"upload"`
	S3             S3Config       `yaml:"s3"`
}

// DatabaseConfig describes the MySQL connection. An explicit DSN wins over
// the individual fields.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// RedisConfig describes the Redis connection. An explicit URL wins over the
// individual fields.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// PathsConfig holds runtime directory locations, resolved relative to the
// executable when not absolute.
type PathsConfig struct {
	Logs   string `yaml:"logs"`
	Static string `yaml:"static"` // uploaded files
	Web    string `yaml:"web"`    // built frontend served as SPA
}

// UploadConfig bounds file uploads.
type UploadConfig struct {
	MaxSizeMB         int      `yaml:"max_size_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// S3Config configures the optional object storage backend for uploads.
type S3Config struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyle       bool   `yaml:"path_style"`
}

// Load reads and validates the YAML config at path, falling back to
// DefaultConfigPath. A missing file yields pure defaults.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && strings.TrimSpace(configPath) == "" {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	cfg.normalize()

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Redis.DB < 0 {
		return nil, fmt.Errorf("invalid redis.db %d in %q, expected >= 0", cfg.Redis.DB, path)
	}
	if cfg.Upload.MaxSizeMB < 1 {
		return nil, fmt.Errorf("invalid upload.max_size_mb %d in %q, expected >= 1", cfg.Upload.MaxSizeMB, path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
		},
		JWTSecret: defaultJWTSecret,
		Upload: UploadConfig{
			MaxSizeMB:         defaultUploadSize,
			AllowedExtensions: append([]string(nil), defaultUploadExtensions...),
		},
		S3: S3Config{
			Region: defaultS3Region,
		},
	}
}

func (c *AppConfig) normalize() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		c.JWTSecret = defaultJWTSecret
	}

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.AllowedOrigins = origins

	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.Redis.Host == "" && c.Redis.URL == "" {
		c.Redis.Host = defaultRedisHost
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = defaultRedisPort
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = defaultUploadSize
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		c.Upload.AllowedExtensions = append([]string(nil), defaultUploadExtensions...)
	}
	for i, ext := range c.Upload.AllowedExtensions {
		c.Upload.AllowedExtensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	if c.S3.Region == "" {
		c.S3.Region = defaultS3Region
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// DSNValue builds the MySQL DSN. An explicit dsn field is returned verbatim.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	mc := sqlmysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": c.Charset}
	return mc.FormatDSN()
}

// URLValue builds the redis:// URL. An explicit url field is returned with a
// scheme prepended if missing.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		if strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://") {
			return v
		}
		return "redis://" + v
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	auth := ""
	if c.Password != "" {
		auth = ":" + c.Password + "@"
	}
	return fmt.Sprintf("%s://%s%s/%d", scheme, auth,
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.DB)
}

// LogDir returns the resolved log directory.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.Paths.Logs, defaultLogsDir)
}

// StaticDir returns the resolved upload directory. FOLIO_STATIC_DIR overrides
// the config value.
func (c *AppConfig) StaticDir() string {
	if dir := strings.TrimSpace(os.Getenv(EnvStaticDirEnvVar)); dir != "" {
		return ResolveRuntimePath(dir, defaultStaticDir)
	}
	return ResolveRuntimePath(c.Paths.Static, defaultStaticDir)
}

// WebDir returns the resolved SPA directory.
func (c *AppConfig) WebDir() string {
	return ResolveRuntimePath(c.Paths.Web, defaultWebDir)
}
