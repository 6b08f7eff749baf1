package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/salinity-watch/internal/domain/species"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Species   SpeciesConfig   `yaml:"species"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Store     StoreConfig     `yaml:"store"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Stations  StationsConfig  `yaml:"stations"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// SpeciesConfig selects the reference table. An empty TablePath uses the
// embedded table. MatchMode "first" keeps the classic first-contained-alias
// resolution; the default "priority" prefers exact, then longest, aliases.
type SpeciesConfig struct {
	TablePath string `yaml:"tablePath"`
	MatchMode string `yaml:"matchMode"`
}

// AnalysisConfig sizes the reading window and the analyzer.
type AnalysisConfig struct {
	MinReadings int `yaml:"minReadings"`
	WindowSize  int `yaml:"windowSize"`
}

// StoreConfig chooses where the window lives.
type StoreConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared window.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Key     string `yaml:"key"`
}

// SimulatorConfig drives the synthetic feed.
type SimulatorConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Schedule         string  `yaml:"schedule"`
	Seed             int64   `yaml:"seed"`
	SeedHistory      bool    `yaml:"seedHistory"`
	StartSalinity    float64 `yaml:"startSalinity"`
	StartTemperature float64 `yaml:"startTemperature"`
	SalinityStep     float64 `yaml:"salinityStep"`
	TemperatureStep  float64 `yaml:"temperatureStep"`
	MinSalinity      float64 `yaml:"minSalinity"`
	MaxSalinity      float64 `yaml:"maxSalinity"`
	MinTemperature   float64 `yaml:"minTemperature"`
	MaxTemperature   float64 `yaml:"maxTemperature"`
}

// StationsConfig authenticates field buoys. Keys maps station IDs to bcrypt hashes.
type StationsConfig struct {
	Secret   string            `yaml:"secret"`
	TokenTTL time.Duration     `yaml:"tokenTtl"`
	Keys     map[string]string `yaml:"keys"`
}

// Load reads configuration from a YAML file, a .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("SPECIES_TABLE_PATH"); v != "" {
		cfg.Species.TablePath = v
	}
	if v := os.Getenv("SPECIES_MATCH_MODE"); v != "" {
		cfg.Species.MatchMode = v
	}
	if v := os.Getenv("ANALYSIS_MIN_READINGS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MinReadings = parsed
		}
	}
	if v := os.Getenv("ANALYSIS_WINDOW_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.WindowSize = parsed
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Store.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Store.Valkey.Addr = v
	}
	if v := os.Getenv("VALKEY_KEY"); v != "" {
		cfg.Store.Valkey.Key = v
	}
	if v := os.Getenv("SIMULATOR_ENABLED"); v != "" {
		cfg.Simulator.Enabled = parseBool(v)
	}
	if v := os.Getenv("SIMULATOR_SCHEDULE"); v != "" {
		cfg.Simulator.Schedule = v
	}
	if v := os.Getenv("SIMULATOR_SEED"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulator.Seed = parsed
		}
	}
	if v := os.Getenv("STATION_TOKEN_SECRET"); v != "" {
		cfg.Stations.Secret = v
	}
	if v := os.Getenv("STATION_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Stations.TokenTTL = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			CORSOrigins:  []string{"http://localhost:5173"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Species: SpeciesConfig{
			MatchMode: string(species.MatchPriority),
		},
		Analysis: AnalysisConfig{
			MinReadings: 1,
			WindowSize:  10,
		},
		Store: StoreConfig{
			Valkey: ValkeyConfig{
				Key: "salinity:readings",
			},
		},
		Simulator: SimulatorConfig{
			Schedule:         "@every 5s",
			Seed:             1,
			SeedHistory:      true,
			StartSalinity:    1.7,
			StartTemperature: 29.2,
			SalinityStep:     0.2,
			TemperatureStep:  0.3,
			MinSalinity:      0,
			MaxSalinity:      12,
			MinTemperature:   18,
			MaxTemperature:   34,
		},
		Stations: StationsConfig{
			TokenTTL: time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if _, ok := species.ParseMatchMode(c.Species.MatchMode); !ok {
		return fmt.Errorf("species.matchMode %q must be %q or %q", c.Species.MatchMode, species.MatchFirst, species.MatchPriority)
	}
	if c.Analysis.MinReadings <= 0 {
		return errors.New("analysis.minReadings must be positive")
	}
	if c.Analysis.WindowSize <= 0 {
		return errors.New("analysis.windowSize must be positive")
	}
	if c.Analysis.MinReadings > c.Analysis.WindowSize {
		return errors.New("analysis.minReadings cannot exceed analysis.windowSize")
	}
	if c.Store.Valkey.Enabled && strings.TrimSpace(c.Store.Valkey.Addr) == "" {
		return errors.New("store.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Simulator.Enabled {
		if strings.TrimSpace(c.Simulator.Schedule) == "" {
			return errors.New("simulator.schedule cannot be empty when the simulator is enabled")
		}
		if c.Simulator.MinSalinity < 0 || c.Simulator.MinSalinity > c.Simulator.MaxSalinity {
			return errors.New("simulator salinity bounds must satisfy 0 <= min <= max")
		}
		if c.Simulator.MinTemperature > c.Simulator.MaxTemperature {
			return errors.New("simulator temperature bounds must satisfy min <= max")
		}
	}
	if len(c.Stations.Keys) > 0 {
		if strings.TrimSpace(c.Stations.Secret) == "" {
			return errors.New("stations.secret cannot be empty when station keys are configured")
		}
		if c.Stations.TokenTTL <= 0 {
			return errors.New("stations.tokenTtl must be positive")
		}
	}
	return nil
}
