package config

import (
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// AppConfig holds configuration values.
// Sensitive data should never have defaults inside code and must be provided via config files or the environment.
type AppConfig struct {
	AppPort        string   `mapstructure:"app_port"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	TokenTTLHours  int      `mapstructure:"token_ttl_hours"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AdminUsernames []string `mapstructure:"admin_usernames"`
	// Rate limiting and registration guard
	RateLimitPerMinute     int `mapstructure:"rate_limit_per_minute"`
	RegisterMaxPerIPPerDay int `mapstructure:"register_max_per_ip_per_day"`
	// Database
	DBDriver    string `mapstructure:"db_driver"`
	DatabaseURI string `mapstructure:"database_uri"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      string `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name"`
	// Redis for caching, locks and token revocation
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     int    `mapstructure:"redis_port"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPassword string `mapstructure:"redis_password"`
	// Gin framework configuration
	GinMode string `mapstructure:"gin_mode"`
	GinPath string `mapstructure:"gin_path"`
	// Logging configuration
	LogLevel      string `mapstructure:"log_level"`
	LogPath       string `mapstructure:"log_path"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
	LogCompress   bool   `mapstructure:"log_compress"`
	// Daily rotation and caching
	RotationLockTTLSeconds  int `mapstructure:"rotation_lock_ttl_seconds"`
	RotationRetrySeconds    int `mapstructure:"rotation_retry_seconds"`
	LeaderboardCacheSeconds int `mapstructure:"leaderboard_cache_seconds"`
}

var (
	cfg    AppConfig
	loaded bool
	mu     sync.Mutex
)

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return cfg
	}

	// Precedence: defaults -> config/config.json -> DC_* environment variables
	c, err := Read(viper.New(), "config")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if c.JWTSecret == "" {
		log.Fatal("jwt_secret must be set (DC_JWT_SECRET)")
	}

	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	mu.Lock()
	ok := loaded
	mu.Unlock()
	if !ok {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration; used by tests and tools.
func Set(c AppConfig) {
	mu.Lock()
	defer mu.Unlock()
	applyDefaults(&c)
	cfg = c
	loaded = true
}

// Read resolves configuration from dir/config.json and the environment using v.
// A missing file is not an error.
func Read(v *viper.Viper, dir string) (AppConfig, error) {
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("DC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return AppConfig{}, err
		}
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return AppConfig{}, err
	}
	// AutomaticEnv yields a single string for list keys
	c.AllowedOrigins = splitList(c.AllowedOrigins)
	c.AdminUsernames = splitList(c.AdminUsernames)
	applyDefaults(&c)
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "8080")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl_hours", 24*7)
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("admin_usernames", []string{})
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("register_max_per_ip_per_day", 10)
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_uri", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "dailychallenge")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_password", "")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("gin_path", "logs/gin.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_path", "logs/app.log")
	v.SetDefault("log_max_size_mb", 100)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 7)
	v.SetDefault("log_compress", false)
	v.SetDefault("rotation_lock_ttl_seconds", 120)
	v.SetDefault("rotation_retry_seconds", 30)
	v.SetDefault("leaderboard_cache_seconds", 60)
}

// applyDefaults fills zero values that would otherwise break the server.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = 24 * 7
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 120
	}
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.LeaderboardCacheSeconds <= 0 {
		c.LeaderboardCacheSeconds = 60
	}
	if c.RotationLockTTLSeconds <= 0 {
		c.RotationLockTTLSeconds = 120
	}
	if c.RotationRetrySeconds <= 0 {
		c.RotationRetrySeconds = 30
	}
	c.DBDriver = strings.ToLower(c.DBDriver)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
