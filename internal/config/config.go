package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"agenteval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Agents   AgentConfig
	Data     DataConfig
	Analysis AnalysisConfig
	Server   ServerConfig
}

// AIConfig holds LLM client settings shared by the simulator and judges
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	JudgeModel  string
	Temperature float64
	Timeout     time.Duration
}

// AgentConfig names the variants under evaluation
type AgentConfig struct {
	IDs        []string
	BaselineID string
	BaseURL    string
}

// DataConfig holds input dataset settings
type DataConfig struct {
	Path         string
	MetadataPath string
	DatabaseURL  string
	DatasetName  string
}

// AnalysisConfig holds the statistical thresholds and the report view
type AnalysisConfig struct {
	Alpha         float64
	MinSampleSize int
	View          string
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}

	agentConfig, err := loadAgentConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load agent configuration")
	}

	config := &Config{
		AI:       *aiConfig,
		Agents:   *agentConfig,
		Data:     loadDataConfig(),
		Analysis: loadAnalysisConfig(),
		Server:   loadServerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAIConfig() (*AIConfig, error) {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return nil, errors.ConfigInvalid("API_KEY is required")
	}

	return &AIConfig{
		APIKey:      apiKey,
		BaseURL:     getEnvOrDefault("API_BASE_URL", "https://api.openai.com/v1"),
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		JudgeModel:  getEnvOrDefault("JUDGE_MODEL", getEnvOrDefault("LLM_MODEL", "gpt-4o-mini")),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 1.0),
		Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 120*time.Second),
	}, nil
}

func loadAgentConfig() (*AgentConfig, error) {
	raw := os.Getenv("AGENT_IDS")
	if raw == "" {
		return nil, errors.ConfigInvalid("AGENT_IDS is required")
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.ConfigInvalid("AGENT_IDS must name at least one agent")
	}

	// The first listed agent is the baseline unless overridden
	baseline := getEnvOrDefault("BASELINE_AGENT_ID", ids[0])

	return &AgentConfig{
		IDs:        ids,
		BaselineID: baseline,
		BaseURL:    getEnvOrDefault("AGENT_BASE_URL", ""),
	}, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		Path:         getEnvOrDefault("DATA_PATH", ""),
		MetadataPath: getEnvOrDefault("EVALUATOR_METADATA_PATH", "evaluator-scores.yaml"),
		DatabaseURL:  getEnvOrDefault("DATABASE_URL", ""),
		DatasetName:  getEnvOrDefault("DATASET_NAME", ""),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Alpha:         getEnvFloatOrDefault("ALPHA", 0.05),
		MinSampleSize: getEnvIntOrDefault("MIN_SAMPLE_SIZE", 10),
		View:          getEnvOrDefault("EVALUATION_RESULT_VIEW", "default"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func validateConfig(config *Config) error {
	if config.Data.Path == "" && config.Data.DatabaseURL == "" {
		return errors.ConfigInvalid("either DATA_PATH or DATABASE_URL is required")
	}
	if config.Data.DatabaseURL != "" && config.Data.DatasetName == "" {
		return errors.ConfigInvalid("DATASET_NAME is required when loading from a database")
	}
	if config.Analysis.Alpha <= 0 || config.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("ALPHA must be between 0 and 1")
	}
	if config.Analysis.MinSampleSize < 1 {
		return errors.ConfigInvalid("MIN_SAMPLE_SIZE must be at least 1")
	}
	baselineListed := false
	for _, id := range config.Agents.IDs {
		if id == config.Agents.BaselineID {
			baselineListed = true
			break
		}
	}
	if !baselineListed {
		return errors.ConfigInvalid("BASELINE_AGENT_ID must be one of AGENT_IDS")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
