// Package config loads service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// NominatimConfig provides settings for the geocoding adapter.
type NominatimConfig interface {
	GetNominatimURL() string
	GetNominatimUserAgent() string
	GetNominatimRPS() float64
	GetHTTPClientTimeout() time.Duration
}

// RoutingConfig provides settings for the routing engine client.
type RoutingConfig interface {
	GetOSRMURL() string
	GetOSRMProfile() string
	GetHTTPClientTimeout() time.Duration
}

// PhotoConfig provides settings for the photo lookup client.
type PhotoConfig interface {
	GetWikimediaURL() string
	GetHTTPClientTimeout() time.Duration
}

// CacheConfig provides settings for the geocode cache.
type CacheConfig interface {
	GetRedisURL() string
	GetGeocodeCacheTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetStaticDir() string
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// Config holds all configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	StaticDir          string
	MapConfigPath      string
	AccidentDataSource string
	NominatimURL       string
	NominatimUserAgent string
	NominatimRPS       float64
	OSRMURL            string
	OSRMProfile        string
	WikimediaURL       string
	HTTPClientTimeout  time.Duration
	RedisURL           string
	GeocodeCacheTTL    time.Duration
	SessionIdleTTL     time.Duration
	CORSOrigins        []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

func (c *Config) GetNominatimURL() string             { return c.NominatimURL }
func (c *Config) GetNominatimUserAgent() string       { return c.NominatimUserAgent }
func (c *Config) GetNominatimRPS() float64            { return c.NominatimRPS }
func (c *Config) GetHTTPClientTimeout() time.Duration { return c.HTTPClientTimeout }
func (c *Config) GetOSRMURL() string                  { return c.OSRMURL }
func (c *Config) GetOSRMProfile() string              { return c.OSRMProfile }
func (c *Config) GetWikimediaURL() string             { return c.WikimediaURL }
func (c *Config) GetRedisURL() string                 { return c.RedisURL }
func (c *Config) GetGeocodeCacheTTL() time.Duration   { return c.GeocodeCacheTTL }
func (c *Config) GetHTTPAddr() string                 { return c.HTTPAddr }
func (c *Config) GetStaticDir() string                { return c.StaticDir }
func (c *Config) GetCORSOrigins() []string            { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64            { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int              { return c.RateLimitBurst }

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []string
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return d
	}
	float := func(key, def string) float64 {
		f, err := strconv.ParseFloat(getEnvOrDefault(key, def), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return f
	}
	integer := func(key, def string) int {
		n, err := strconv.Atoi(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return n
	}

	staticDir := getEnvOrDefault("STATIC_DIR", "./static")

	cfg := &Config{
		Env:                getEnvOrDefault("APP_ENV", "development"),
		HTTPAddr:           getEnvOrDefault("HTTP_ADDR", ":8080"),
		StaticDir:          staticDir,
		MapConfigPath:      getEnvOrDefault("MAP_CONFIG_PATH", "map.yaml"),
		AccidentDataSource: getEnvOrDefault("ACCIDENT_DATA_SOURCE", strings.TrimRight(staticDir, "/")+"/data.json"),
		NominatimURL:       strings.TrimRight(getEnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		NominatimUserAgent: getEnvOrDefault("NOMINATIM_USER_AGENT", "accident-map/1.0"),
		NominatimRPS:       float("NOMINATIM_RPS", "1"),
		OSRMURL:            strings.TrimRight(getEnvOrDefault("OSRM_URL", "https://router.project-osrm.org"), "/"),
		OSRMProfile:        getEnvOrDefault("OSRM_PROFILE", "driving"),
		WikimediaURL:       getEnvOrDefault("WIKIMEDIA_URL", "https://commons.wikimedia.org/w/api.php"),
		HTTPClientTimeout:  duration("HTTP_CLIENT_TIMEOUT", "10s"),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		GeocodeCacheTTL:    duration("GEOCODE_CACHE_TTL", "24h"),
		SessionIdleTTL:     duration("SESSION_IDLE_TTL", "2h"),
		CORSOrigins:        splitCSV(getEnvOrDefault("CORS_ORIGINS", "http://localhost:8080")),
		RateLimitRPS:       float("RATE_LIMIT_RPS", "10"),
		RateLimitBurst:     integer("RATE_LIMIT_BURST", "20"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	if cfg.NominatimRPS <= 0 {
		return nil, fmt.Errorf("NOMINATIM_RPS must be positive")
	}
	if cfg.OSRMProfile == "" {
		return nil, fmt.Errorf("OSRM_PROFILE must not be empty")
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment value for key, or defaultVal if unset.
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
