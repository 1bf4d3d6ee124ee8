package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Study  StudyConfig
	Export ExportConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	Path         string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// Enabled reports whether session tokens are issued at login.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

type StudyConfig struct {
	// DefaultOperatorID is the Mitarbeiter credited with submissions that
	// carry no session token.
	DefaultOperatorID int64
	RequireAuth       bool
}

type ExportConfig struct {
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3Prefix    string
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var keys = []string{
	"APP_PORT", "APP_ENV", "LOG_LEVEL", "CORS_ORIGINS",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PATH",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_AUTO_MIGRATE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_ACCESS_EXPIRY",
	"STUDY_DEFAULT_OPERATOR_ID", "REQUIRE_AUTH",
	"EXPORT_S3_BUCKET", "EXPORT_S3_REGION", "EXPORT_S3_ENDPOINT", "EXPORT_S3_PATH_STYLE", "EXPORT_S3_PREFIX",
}

// LoadConfig reads the environment, optionally overlaid by a .env file in the
// working directory.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_PATH", "study.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_ACCESS_EXPIRY", "8h")
	v.SetDefault("STUDY_DEFAULT_OPERATOR_ID", 1)
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("EXPORT_S3_REGION", "eu-central-1")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// .env is optional
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}

	dbPort := v.GetString("DB_PORT")
	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	if dbPort == "" {
		switch driver {
		case DriverMySQL:
			dbPort = "3306"
		case DriverPostgres:
			dbPort = "5432"
		}
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		DB: DBConfig{
			Driver:       driver,
			Host:         v.GetString("DB_HOST"),
			Port:         dbPort,
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			Path:         v.GetString("DB_PATH"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Study: StudyConfig{
			DefaultOperatorID: v.GetInt64("STUDY_DEFAULT_OPERATOR_ID"),
			RequireAuth:       v.GetBool("REQUIRE_AUTH"),
		},
		Export: ExportConfig{
			S3Bucket:    v.GetString("EXPORT_S3_BUCKET"),
			S3Region:    v.GetString("EXPORT_S3_REGION"),
			S3Endpoint:  v.GetString("EXPORT_S3_ENDPOINT"),
			S3PathStyle: v.GetBool("EXPORT_S3_PATH_STYLE"),
			S3Prefix:    v.GetString("EXPORT_S3_PREFIX"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for DB_DRIVER=%s", c.DB.Driver)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("DB_PATH is required for DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be mysql, postgres or sqlite, got %q", c.DB.Driver)
	}

	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DB.MaxOpenConns)
	}
	if c.Study.RequireAuth && !c.JWT.Enabled() {
		return fmt.Errorf("JWT_SECRET is required when REQUIRE_AUTH is true")
	}
	if !c.Study.RequireAuth && c.Study.DefaultOperatorID <= 0 {
		return fmt.Errorf("STUDY_DEFAULT_OPERATOR_ID must be positive, got %d", c.Study.DefaultOperatorID)
	}
	if c.JWT.AccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
