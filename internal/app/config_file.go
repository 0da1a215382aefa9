package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	LLM struct {
		BaseURL     string `yaml:"base" json:"base"`
		Model       string `yaml:"model" json:"model"`
		VisionModel string `yaml:"visionModel" json:"visionModel"`
		APIKey      string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		UserAgent string        `yaml:"ua" json:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"cache" json:"cache"`

	Server struct {
		Listen        string   `yaml:"listen" json:"listen"`
		RedisAddr     string   `yaml:"redis" json:"redis"`
		RatePerMinute int      `yaml:"ratePerMinute" json:"ratePerMinute"`
		AllowOrigins  []string `yaml:"allowOrigins" json:"allowOrigins"`
	} `yaml:"server" json:"server"`

	Limits struct {
		MaxTextChars  int `yaml:"maxTextChars" json:"maxTextChars"`
		MaxImageBytes int `yaml:"maxImageBytes" json:"maxImageBytes"`
	} `yaml:"limits" json:"limits"`

	Verbose      bool `yaml:"verbose" json:"verbose"`
	DebugVerbose bool `yaml:"debugVerbose" json:"debugVerbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields that are currently
// unset. Flags should already have been parsed; the file supplies defaults
// while explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.VisionModel == "" && fc.LLM.VisionModel != "" {
		cfg.VisionModel = fc.LLM.VisionModel
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.ListenAddr == "" && fc.Server.Listen != "" {
		cfg.ListenAddr = fc.Server.Listen
	}
	if cfg.RedisAddr == "" && fc.Server.RedisAddr != "" {
		cfg.RedisAddr = fc.Server.RedisAddr
	}
	if cfg.RatePerMinute == 0 && fc.Server.RatePerMinute > 0 {
		cfg.RatePerMinute = fc.Server.RatePerMinute
	}
	if len(cfg.AllowedOrigins) == 0 && len(fc.Server.AllowOrigins) > 0 {
		cfg.AllowedOrigins = append([]string{}, fc.Server.AllowOrigins...)
	}
	if cfg.MaxTextChars == 0 && fc.Limits.MaxTextChars > 0 {
		cfg.MaxTextChars = fc.Limits.MaxTextChars
	}
	if cfg.MaxImageBytes == 0 && fc.Limits.MaxImageBytes > 0 {
		cfg.MaxImageBytes = fc.Limits.MaxImageBytes
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.DebugVerbose && fc.DebugVerbose {
		cfg.DebugVerbose = true
	}
}
