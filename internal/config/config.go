package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// KakaoConfig holds credentials for the Kakao Local API.
type KakaoConfig struct {
	RESTAPIKey string
	BaseURL    string
}

// NaverConfig holds credentials for the Naver search API.
type NaverConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// RedisConfig points at the optional mention-count cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port               string
	DatabaseURL        string
	Kakao              KakaoConfig
	Naver              NaverConfig
	Redis              RedisConfig
	ProviderTimeout    time.Duration
	ReviewTimeout      time.Duration
	EnrichWorkers      int
	RegionKeyword      string
	FallbackLat        float64
	FallbackLon        float64
	MentionCacheTTL    time.Duration
	RateLimitRecommend RateLimitConfig
	LogLevel           string
	LogFormat          string
}

// Error reports required settings that are absent or malformed. It is fatal at startup.
type Error struct {
	Missing []string
	Invalid []string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "config: " + strings.Join(parts, "; ")
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Kakao: KakaoConfig{
			RESTAPIKey: strings.TrimSpace(os.Getenv("KAKAO_REST_API_KEY")),
			BaseURL:    getEnv("KAKAO_BASE_URL", "https://dapi.kakao.com"),
		},
		Naver: NaverConfig{
			ClientID:     firstEnv("NAVER_CLIENT_ID", "NAVER_SERVICE_CLIENT_ID"),
			ClientSecret: firstEnv("NAVER_CLIENT_SECRET", "NAVER_SERVICE_CLIENT_SECRET"),
			BaseURL:      getEnv("NAVER_BASE_URL", "https://openapi.naver.com"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		ProviderTimeout: parseDuration(getEnv("PROVIDER_TIMEOUT", "3s"), 3*time.Second),
		ReviewTimeout:   parseDuration(getEnv("REVIEW_TIMEOUT", "5s"), 5*time.Second),
		RegionKeyword:   getEnv("REGION_KEYWORD", "철원"),
		MentionCacheTTL: parseDuration(getEnv("MENTION_CACHE_TTL", "6h"), 6*time.Hour),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	cfgErr := &Error{}
	if cfg.Kakao.RESTAPIKey == "" {
		cfgErr.Missing = append(cfgErr.Missing, "KAKAO_REST_API_KEY")
	}
	if cfg.Naver.ClientID == "" {
		cfgErr.Missing = append(cfgErr.Missing, "NAVER_CLIENT_ID")
	}
	if cfg.Naver.ClientSecret == "" {
		cfgErr.Missing = append(cfgErr.Missing, "NAVER_CLIENT_SECRET")
	}

	var err error
	if cfg.EnrichWorkers, err = strconv.Atoi(getEnv("ENRICH_WORKERS", "4")); err != nil || cfg.EnrichWorkers <= 0 {
		cfgErr.Invalid = append(cfgErr.Invalid, "ENRICH_WORKERS")
	}
	if cfg.Redis.DB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil || cfg.Redis.DB < 0 {
		cfgErr.Invalid = append(cfgErr.Invalid, "REDIS_DB")
	}
	if cfg.FallbackLat, err = strconv.ParseFloat(getEnv("FALLBACK_LAT", "38.1467"), 64); err != nil || !finite(cfg.FallbackLat) || cfg.FallbackLat < -90 || cfg.FallbackLat > 90 {
		cfgErr.Invalid = append(cfgErr.Invalid, "FALLBACK_LAT")
	}
	if cfg.FallbackLon, err = strconv.ParseFloat(getEnv("FALLBACK_LON", "127.3136"), 64); err != nil || !finite(cfg.FallbackLon) || cfg.FallbackLon < -180 || cfg.FallbackLon > 180 {
		cfgErr.Invalid = append(cfgErr.Invalid, "FALLBACK_LON")
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_RECOMMEND", "30/min"))
	if err != nil {
		cfgErr.Invalid = append(cfgErr.Invalid, "RATE_LIMIT_RECOMMEND")
	}
	cfg.RateLimitRecommend = rl

	if len(cfgErr.Missing) > 0 || len(cfgErr.Invalid) > 0 {
		return nil, cfgErr
	}
	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// firstEnv returns the first non-blank value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
