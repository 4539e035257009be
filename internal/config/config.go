package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the full service configuration loaded from config.toml, with
// credentials optionally overridden from the environment (.env supported).
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	Redis         RedisConfig         `toml:"redis"`
	UserDirectory UserDirectoryConfig `toml:"user_directory"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	Migrate         bool   `toml:"migrate"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulerConfig holds the fixed civil-time offset and slot sizing rules.
// The offset applies to every psychologist; the platform is single-region.
type SchedulerConfig struct {
	UTCOffsetMinutes    int `toml:"utc_offset_minutes"`
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	MinDurationMinutes  int `toml:"min_duration_minutes"`
	MaxDurationMinutes  int `toml:"max_duration_minutes"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type UserDirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load reads the TOML config at path and applies environment overrides.
func Load(path string) (*Config, error) {
	// .env отсутствует в production окружении, ошибка не критична
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Scheduler.SlotDurationMinutes == 0 {
		cfg.Scheduler.SlotDurationMinutes = 60
	}
	if cfg.Scheduler.MinDurationMinutes == 0 {
		cfg.Scheduler.MinDurationMinutes = 30
	}
	if cfg.Scheduler.MaxDurationMinutes == 0 {
		cfg.Scheduler.MaxDurationMinutes = 120
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 60
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.HTTPPort == 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if cfg.Scheduler.UTCOffsetMinutes < -12*60 || cfg.Scheduler.UTCOffsetMinutes > 14*60 {
		return fmt.Errorf("config: scheduler.utc_offset_minutes out of range")
	}
	if cfg.Scheduler.MinDurationMinutes > cfg.Scheduler.MaxDurationMinutes {
		return fmt.Errorf("config: scheduler duration bounds inverted")
	}
	return nil
}
