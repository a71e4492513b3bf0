// Package config loads the application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Pipeline variants.
const (
	PipelineRobust = "robust"
	PipelineLegacy = "legacy"
)

// Strategy variants.
const (
	StrategyThreshold = "threshold"
	StrategyRule      = "rule"
)

// Config holds every tunable of the diagnosis service and tools.
type Config struct {
	// Application
	LogLevel string
	HTTPAddr string

	// Assets
	CascadeDir string // Directory holding the pigo cascade files
	ModelPath  string // Season model artifact (empty = resolve default)

	// Pipeline selection
	Pipeline string // robust or legacy
	Strategy string // threshold or rule

	// White balance strength applied before face detection (robust only)
	WBStrength float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found, using environment variables and defaults")
	} else {
		log.Info().Msg("loaded configuration from .env file")
	}

	return &Config{
		LogLevel: getEnv("TONELAB_LOG_LEVEL", "info"),
		HTTPAddr: getEnv("TONELAB_HTTP_ADDR", ":8000"),

		CascadeDir: getEnv("TONELAB_CASCADE_DIR", ""),
		ModelPath:  getEnv("TONELAB_MODEL_PATH", ""),

		Pipeline: getEnv("TONELAB_PIPELINE", PipelineRobust),
		Strategy: getEnv("TONELAB_STRATEGY", StrategyRule),

		WBStrength: getEnvFloat("TONELAB_WB_STRENGTH", 0.05),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
