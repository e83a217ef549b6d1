package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	DetectorAPIKey      string
	DetectorBaseURL     string
	DetectorModel       string
	DetectorTimeout     time.Duration
	LLMAPIKey           string
	LLMBaseURL          string
	LLMModel            string
	AnalysisCacheTTL    time.Duration
	AnalysisGranularity string
	AnalysisMethod      string
	AnalysisConcurrency int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ASSESS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Assess API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("detector.timeout_ms", 30000)
	v.SetDefault("analysis.cache_ttl", "10m")
	v.SetDefault("analysis.granularity", "paragraph")
	v.SetDefault("analysis.method", "weighted")
	v.SetDefault("analysis.concurrency", 4)

	ttlString := v.GetString("analysis.cache_ttl")
	if ttlString == "" {
		ttlString = "10m"
	}
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid analysis cache ttl: %w", err)
	}

	timeoutMs := v.GetInt("detector.timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 30000
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		DetectorAPIKey:      v.GetString("detector.api_key"),
		DetectorBaseURL:     v.GetString("detector.base_url"),
		DetectorModel:       v.GetString("detector.model"),
		DetectorTimeout:     time.Duration(timeoutMs) * time.Millisecond,
		LLMAPIKey:           v.GetString("llm.api_key"),
		LLMBaseURL:          v.GetString("llm.base_url"),
		LLMModel:            v.GetString("llm.model"),
		AnalysisCacheTTL:    ttl,
		AnalysisGranularity: strings.ToLower(v.GetString("analysis.granularity")),
		AnalysisMethod:      strings.ToLower(v.GetString("analysis.method")),
		AnalysisConcurrency: v.GetInt("analysis.concurrency"),
	}

	if cfg.AnalysisConcurrency <= 0 {
		cfg.AnalysisConcurrency = 4
	}

	return cfg, nil
}
