package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys: SITECMS_SERVER_PORT -> server.port.
const EnvPrefix = "SITECMS_"

// Development secrets used when none are configured.
const (
	devJWTSecret     = "sitecms-dev-jwt-secret"
	devSessionSecret = "sitecms-dev-session-secret"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Upload   UploadConfig   `koanf:"upload" validate:"required"`
	Logger   LoggerConfig   `koanf:"logger" validate:"required"`
	Admin    AdminConfig    `koanf:"admin"`
}

// ServerConfig groups the HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `koanf:"listen_addr"`
	Port            string        `koanf:"port" validate:"required"`
	GinMode         string        `koanf:"gin_mode" validate:"oneof=debug release test"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	BodyLimit       int64         `koanf:"body_limit" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig points at the sqlite file backing the content store.
type DatabaseConfig struct {
	Path     string `koanf:"path" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"oneof=silent error warn info"`
}

// AuthConfig holds the secrets used for bearer tokens and session cookies.
type AuthConfig struct {
	JWTSecret     string        `koanf:"jwt_secret" validate:"required,min=16"`
	TokenIssuer   string        `koanf:"token_issuer" validate:"required"`
	TokenTTL      time.Duration `koanf:"token_ttl" validate:"gt=0"`
	SessionSecret string        `koanf:"session_secret" validate:"required,min=16"`
	CookieSecure  bool          `koanf:"cookie_secure"`
}

// UploadConfig describes where uploaded images are written and served from.
type UploadConfig struct {
	Dir      string `koanf:"dir" validate:"required"`
	URLPath  string `koanf:"url_path" validate:"required,startswith=/"`
	MaxBytes int64  `koanf:"max_bytes" validate:"gt=0"`
}

// LoggerConfig controls zerolog output.
type LoggerConfig struct {
	Level      string `koanf:"level" validate:"oneof=debug info warn error"`
	Format     string `koanf:"format" validate:"oneof=console json"`
	FilePath   string `koanf:"file_path"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `koanf:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"gte=0"`
}

// AdminConfig seeds the first administrator when both fields are set.
type AdminConfig struct {
	Name     string `koanf:"name"`
	Email    string `koanf:"email" validate:"omitempty,email"`
	Password string `koanf:"password" validate:"omitempty,min=8"`
}

// Default returns the configuration used when no environment overrides exist.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "release",
			AllowedOrigins:  []string{"http://localhost:3000"},
			BodyLimit:       10 << 20,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Path:     "sitecms.db",
			LogLevel: "warn",
		},
		Auth: AuthConfig{
			JWTSecret:     devJWTSecret,
			TokenIssuer:   "sitecms",
			TokenTTL:      24 * time.Hour,
			SessionSecret: devSessionSecret,
		},
		Upload: UploadConfig{
			Dir:      "web/static/uploads",
			URLPath:  "/uploads",
			MaxBytes: 5 << 20,
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Admin: AdminConfig{
			Name: "Administrator",
		},
	}
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	return load(env.Provider(EnvPrefix, ".", envKey))
}

func load(provider koanf.Provider) (AppConfig, error) {
	k := koanf.New(".")
	if err := k.Load(provider, nil); err != nil {
		return AppConfig{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Server.Port = strings.TrimSpace(cfg.Server.Port)
	if strings.TrimSpace(cfg.Server.ListenAddr) == "" {
		cfg.Server.ListenAddr = fmt.Sprintf(":%s", cfg.Server.Port)
	}
	cfg.Upload.URLPath = "/" + strings.Trim(strings.TrimSpace(cfg.Upload.URLPath), "/")

	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envKey maps SITECMS_AUTH_JWT_SECRET to auth.jwt_secret: the first
// underscore after the prefix separates the section from the field.
func envKey(raw string) string {
	key := strings.ToLower(strings.TrimPrefix(raw, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// HasBootstrapAdmin reports whether an initial admin account should be ensured.
func (c AppConfig) HasBootstrapAdmin() bool {
	return strings.TrimSpace(c.Admin.Email) != "" && strings.TrimSpace(c.Admin.Password) != ""
}

// DefaultSecrets lists the auth secrets still set to the built-in
// development values, by their environment variable name.
func (c AppConfig) DefaultSecrets() []string {
	var names []string
	if c.Auth.JWTSecret == devJWTSecret {
		names = append(names, EnvPrefix+"AUTH_JWT_SECRET")
	}
	if c.Auth.SessionSecret == devSessionSecret {
		names = append(names, EnvPrefix+"AUTH_SESSION_SECRET")
	}
	return names
}
