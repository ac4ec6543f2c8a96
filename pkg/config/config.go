package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Security SecurityConfig `mapstructure:"security"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Personas PersonasConfig `mapstructure:"personas"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type CacheConfig struct {
	Backend  string `mapstructure:"backend"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type SecurityConfig struct {
	RateLimit         int      `mapstructure:"rate_limit"`
	RateWindowSeconds int      `mapstructure:"rate_window_seconds"`
	StaffNames        []string `mapstructure:"staff_names"`
}

type RoutingConfig struct {
	RollbackToOriginal bool `mapstructure:"rollback_to_original"`
	UseCareerTracks    bool `mapstructure:"use_career_tracks"`
	CareerTrackRollout int  `mapstructure:"career_track_rollout"`
}

type PersonasConfig struct {
	File string `mapstructure:"file"`
}

type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("security.rate_limit", 20)
	v.SetDefault("security.rate_window_seconds", 60)
	v.SetDefault("routing.rollback_to_original", false)
	v.SetDefault("routing.use_career_tracks", true)
	v.SetDefault("routing.career_track_rollout", 100)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	// Get other environment variables
	if addr := v.GetString("REDIS_URL"); addr != "" {
		config.Cache.Backend = "redis"
		config.Cache.Address = addr
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	// Rollout controls are commonly flipped per environment without a
	// config file change.
	if v.IsSet("ROLLBACK_TO_ORIGINAL") {
		config.Routing.RollbackToOriginal = v.GetBool("ROLLBACK_TO_ORIGINAL")
	}
	if v.IsSet("USE_CAREER_TRACKS") {
		config.Routing.UseCareerTracks = v.GetBool("USE_CAREER_TRACKS")
	}
	if v.IsSet("CAREER_TRACK_ROLLOUT") {
		config.Routing.CareerTrackRollout = v.GetInt("CAREER_TRACK_ROLLOUT")
	}

	return &config, nil
}
