package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the recommendation service.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Index      IndexConfig      `yaml:"index"`
	Popularity PopularityConfig `yaml:"popularity"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Recommend  RecommendConfig  `yaml:"recommend"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// IndexConfig holds document-index configuration.
type IndexConfig struct {
	MaxFeatures int  `yaml:"max_features"`
	Bigrams     bool `yaml:"bigrams"`
}

// PopularityConfig holds the Bayesian prior for popularity scoring.
type PopularityConfig struct {
	PriorWeight float64 `yaml:"prior_weight"`
	PriorMean   float64 `yaml:"prior_mean"`
}

// ClassifierConfig holds genre classifier configuration.
type ClassifierConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MaxFeatures         int     `yaml:"max_features"`
	TopK                int     `yaml:"top_k"`
}

// RecommendConfig holds the blend weights for recommendation ranking.
// Setting feedback_weight to 0 reproduces the older similarity+popularity
// only blend.
type RecommendConfig struct {
	SimilarityWeight float64 `yaml:"similarity_weight"`
	PopularityWeight float64 `yaml:"popularity_weight"`
	FeedbackWeight   float64 `yaml:"feedback_weight"`
	TopK             int     `yaml:"top_k"`
}

// PreprocessConfig holds default CSV preprocessing behavior.
type PreprocessConfig struct {
	Clean             bool `yaml:"clean"`
	Dedupe            bool `yaml:"dedupe"`
	StandardizeGenres bool `yaml:"standardize_genres"`
}

// StorageConfig holds optional catalog snapshot persistence. An empty path
// disables persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Index: IndexConfig{
			MaxFeatures: 20000,
			Bigrams:     true,
		},
		Popularity: PopularityConfig{
			PriorWeight: 150,
			PriorMean:   0.6,
		},
		Classifier: ClassifierConfig{
			ConfidenceThreshold: 0.3,
			MaxFeatures:         10000,
			TopK:                3,
		},
		Recommend: RecommendConfig{
			SimilarityWeight: 0.6,
			PopularityWeight: 0.3,
			FeedbackWeight:   0.1,
			TopK:             8,
		},
		Preprocess: PreprocessConfig{
			Clean:             true,
			Dedupe:            true,
			StandardizeGenres: true,
		},
		Storage: StorageConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for bookrec.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "bookrec.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
