package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultRegion          = "US"
	defaultMaxResults      = 50
	defaultSearchCap       = 100
	defaultMaxSubscribers  = 10000
	defaultMaxTotalViews   = 1000000
	defaultMaxAgeMonths    = 6
	defaultNicheResultCap  = 200
	defaultTopWords        = 20
	defaultSuggestCount    = 5
	defaultPageSize        = 10
	defaultTopVideos       = 10
	defaultUploadsLimit    = 200
	defaultExportDir       = "./exports"
	defaultExportPrefix    = "exports"
	defaultServerAddr      = ":8080"
	defaultGroqModel       = "llama-3.3-70b-versatile"
	defaultUploadBaseURL   = "http://localhost:8090"
	defaultPrivacyStatus   = "private"
	secretVersionLatest    = "/versions/latest"
	youtubeAPIKeyEnv       = "YOUTUBE_API_KEY"
	youtubeAPIKeySecretEnv = "YOUTUBE_API_KEY_SECRET"
)

type Config struct {
	YouTubeAPIKey      string `validate:"required"`
	GroqAPIKey         string
	UploadServiceToken string
	GCSBucket          string
	GCPProject         string

	YouTube YouTubeConfig `yaml:"youtube"`
	Niche   NicheConfig   `yaml:"niche"`
	Ideas   IdeasConfig   `yaml:"ideas"`
	Channel ChannelConfig `yaml:"channel"`
	Export  ExportConfig  `yaml:"export"`
	Server  ServerConfig  `yaml:"server"`
	Groq    GroqConfig    `yaml:"groq"`
	Upload  UploadConfig  `yaml:"upload"`
}

type YouTubeConfig struct {
	Region     string `yaml:"region" validate:"len=2"`
	MaxResults int    `yaml:"max_results" validate:"min=1,max=50"`
	SearchCap  int    `yaml:"search_cap" validate:"min=1"`
	// Endpoint overrides the API base URL.
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`
}

type NicheConfig struct {
	MaxSubscribers   uint64   `yaml:"max_subscribers"`
	MaxTotalViews    uint64   `yaml:"max_total_views"`
	MaxAgeMonths     int      `yaml:"max_age_months" validate:"min=1"`
	ResultCap        int      `yaml:"result_cap" validate:"min=1"`
	FacelessKeywords []string `yaml:"faceless_keywords"`
}

type IdeasConfig struct {
	TopWords     int `yaml:"top_words" validate:"min=1"`
	SuggestCount int `yaml:"suggest_count" validate:"min=1"`
}

type ChannelConfig struct {
	PageSize     int `yaml:"page_size" validate:"min=1"`
	TopVideos    int `yaml:"top_videos" validate:"min=1,max=50"`
	UploadsLimit int `yaml:"uploads_limit" validate:"min=1"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir" validate:"required"`
	Prefix string `yaml:"prefix"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type GroqConfig struct {
	Model string `yaml:"model"`
}

type UploadConfig struct {
	BaseURL       string `yaml:"base_url" validate:"omitempty,url"`
	PrivacyStatus string `yaml:"privacy_status" validate:"oneof=private unlisted public"`
}

// Load reads .env, the environment and config.yaml, fills defaults and
// validates the result.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		YouTubeAPIKey:      os.Getenv(youtubeAPIKeyEnv),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		UploadServiceToken: os.Getenv("UPLOAD_SERVICE_TOKEN"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCPProject:         os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	if err := loadYAMLConfig(cfg, defaultConfigPath); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if cfg.YouTubeAPIKey == "" {
		if name := os.Getenv(youtubeAPIKeySecretEnv); name != "" {
			key, err := fetchSecret(ctx, SecretName(cfg.GCPProject, name))
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", youtubeAPIKeySecretEnv, err)
			}
			cfg.YouTubeAPIKey = key
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyYouTubeDefaults(cfg)
	applyNicheDefaults(cfg)
	applyIdeasDefaults(cfg)
	applyChannelDefaults(cfg)
	applyExportDefaults(cfg)
	applyServerDefaults(cfg)
	applyGroqDefaults(cfg)
	applyUploadDefaults(cfg)
}

func applyYouTubeDefaults(cfg *Config) {
	if cfg.YouTube.Region == "" {
		cfg.YouTube.Region = defaultRegion
	}
	if cfg.YouTube.MaxResults == 0 {
		cfg.YouTube.MaxResults = defaultMaxResults
	}
	if cfg.YouTube.SearchCap == 0 {
		cfg.YouTube.SearchCap = defaultSearchCap
	}
}

func applyNicheDefaults(cfg *Config) {
	if cfg.Niche.MaxSubscribers == 0 {
		cfg.Niche.MaxSubscribers = defaultMaxSubscribers
	}
	if cfg.Niche.MaxTotalViews == 0 {
		cfg.Niche.MaxTotalViews = defaultMaxTotalViews
	}
	if cfg.Niche.MaxAgeMonths == 0 {
		cfg.Niche.MaxAgeMonths = defaultMaxAgeMonths
	}
	if cfg.Niche.ResultCap == 0 {
		cfg.Niche.ResultCap = defaultNicheResultCap
	}
}

func applyIdeasDefaults(cfg *Config) {
	if cfg.Ideas.TopWords == 0 {
		cfg.Ideas.TopWords = defaultTopWords
	}
	if cfg.Ideas.SuggestCount == 0 {
		cfg.Ideas.SuggestCount = defaultSuggestCount
	}
}

func applyChannelDefaults(cfg *Config) {
	if cfg.Channel.PageSize == 0 {
		cfg.Channel.PageSize = defaultPageSize
	}
	if cfg.Channel.TopVideos == 0 {
		cfg.Channel.TopVideos = defaultTopVideos
	}
	if cfg.Channel.UploadsLimit == 0 {
		cfg.Channel.UploadsLimit = defaultUploadsLimit
	}
}

func applyExportDefaults(cfg *Config) {
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = defaultExportDir
	}
	if cfg.Export.Prefix == "" {
		cfg.Export.Prefix = defaultExportPrefix
	}
}

func applyServerDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = getEnvOrDefault("TUBESCOUT_ADDR", defaultServerAddr)
	}
}

func applyGroqDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

func applyUploadDefaults(cfg *Config) {
	if cfg.Upload.BaseURL == "" {
		cfg.Upload.BaseURL = getEnvOrDefault("UPLOAD_SERVICE_URL", defaultUploadBaseURL)
	}
	if cfg.Upload.PrivacyStatus == "" {
		cfg.Upload.PrivacyStatus = defaultPrivacyStatus
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
