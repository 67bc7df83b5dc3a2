package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig Driver 取值 mysql / postgres / sqlite
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	Charset      string
	ParseTime    bool
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"` // sqlite 文件路径
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogSQL       bool   `mapstructure:"log_sql"`
}

// JWTConfig 令牌由外部认证服务签发，这里只做校验
type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	ServiceName       string  `mapstructure:"service_name"`
	SampleRatio       float64 `mapstructure:"sample_ratio"` // 0..1
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration `mapstructure:"cache_ttl_seconds"`

	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout_ms"`
}

type LogConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type ProgressConfig struct {
	CollaboratorTimeout time.Duration `mapstructure:"collaborator_timeout_ms"`
	MaxWriteRetries     int           `mapstructure:"max_write_retries"`
}

type AnalyticsConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval_seconds"`
	RecentPerSource int           `mapstructure:"recent_per_source"`
	ReportArchiveAt string        `mapstructure:"report_archive_at"` // 每日归档时间 HH:MM
	OrphanScanAt    string        `mapstructure:"orphan_scan_at"`
	TimeZone        string        `mapstructure:"timezone"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "data/lingua.db")
	v.SetDefault("database.max_open_conns", 20)

	v.SetDefault("redis.cache_ttl_seconds", 60)
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.dial_timeout_ms", 3000)

	v.SetDefault("tracing.service_name", "lingua-progress")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "reports")

	v.SetDefault("log.path", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)

	v.SetDefault("progress.collaborator_timeout_ms", 2000)
	v.SetDefault("progress.max_write_retries", 3)

	v.SetDefault("analytics.refresh_interval_seconds", 30)
	v.SetDefault("analytics.recent_per_source", 5)
	v.SetDefault("analytics.report_archive_at", "02:00")
	v.SetDefault("analytics.orphan_scan_at", "03:00")
	v.SetDefault("analytics.timezone", "UTC")
}

// LoadConfig 每次调用使用独立的 viper 实例，热更新重新加载时不会残留旧值
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LINGUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("database.path", "DATABASE_PATH")

	// JWT
	v.BindEnv("jwt.enabled", "JWT_ENABLED")
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")
	v.BindEnv("tracing.sample_ratio", "TRACING_SAMPLE_RATIO")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Redis.CacheTTL = cfg.Redis.CacheTTL * time.Second
	cfg.Redis.DialTimeout = cfg.Redis.DialTimeout * time.Millisecond
	cfg.Progress.CollaboratorTimeout = cfg.Progress.CollaboratorTimeout * time.Millisecond
	cfg.Analytics.RefreshInterval = cfg.Analytics.RefreshInterval * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	// 生产环境校验 JWT Secret 强度
	if c.JWT.Enabled && c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	if c.Progress.MaxWriteRetries < 1 {
		c.Progress.MaxWriteRetries = 1
	}

	if _, err := time.LoadLocation(c.Analytics.TimeZone); err != nil {
		return fmt.Errorf("invalid analytics timezone %q: %w", c.Analytics.TimeZone, err)
	}

	return nil
}

// Location 返回统计按天分桶使用的时区
func (a AnalyticsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
