package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Recall source endpoints and link filters"`
	Crawler CrawlerConfig `yaml:"crawler" json:"crawler" jsonschema:"description=Crawl API configuration"`
	Search  SearchConfig  `yaml:"search" json:"search" jsonschema:"description=Web search API configuration"`
	LLM     LLMConfig     `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for extraction and analysis"`
	Retry   RetryConfig   `yaml:"retry" json:"retry" jsonschema:"description=Retry policy for external calls"`
	Storage StorageConfig `yaml:"storage" json:"storage" jsonschema:"description=Artifact directories"`
}

// SourcesConfig holds the two fixed recall source endpoints and their
// link-filter rules
type SourcesConfig struct {
	FDAListingURL  string   `yaml:"fda_listing_url" json:"fda_listing_url" jsonschema:"default=https://www.fda.gov/safety/recalls-market-withdrawals-safety-alerts,description=FDA recalls listing page"`
	FDADetailBase  string   `yaml:"fda_detail_base" json:"fda_detail_base" jsonschema:"description=Prefix a link must carry to count as an FDA recall detail page"`
	FDASkipMarkers []string `yaml:"fda_skip_markers" json:"fda_skip_markers" jsonschema:"description=Substrings marking FDA navigation and index links to drop"`
	USDAListingURL string   `yaml:"usda_listing_url" json:"usda_listing_url" jsonschema:"default=https://www.fsis.usda.gov/recalls,description=USDA recalls listing page"`
	USDALinkMarker string   `yaml:"usda_link_marker" json:"usda_link_marker" jsonschema:"default=/recalls-alerts/,description=Path segment marking USDA recall detail links"`
}

// CrawlerConfig holds the crawl API settings
type CrawlerConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.firecrawl.dev,description=Crawl API endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=Crawl API key (can use environment variable)"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Per-request timeout"`
}

// SearchConfig holds the web search API settings
type SearchConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.tavily.com,description=Search API endpoint"`
	APIKey     string        `yaml:"api_key" json:"api_key" jsonschema:"description=Search API key (can use environment variable)"`
	MaxResults int           `yaml:"max_results" json:"max_results" jsonschema:"default=10,description=Maximum search results per query"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request timeout"`
}

// LLMConfig holds LLM configuration for extraction, impact analysis and
// report generation
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.5,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4096,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=120s,description=Request timeout"`
}

// RetryConfig holds the shared retry policy constants. The search and LLM
// delay ceilings differ on purpose; both stay configurable rather than
// silently unified.
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=5,description=Maximum attempts per external call"`
	BaseDelay      time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=60s,description=Initial backoff delay"`
	SearchMaxDelay time.Duration `yaml:"search_max_delay" json:"search_max_delay" jsonschema:"default=300s,description=Backoff ceiling for fetch and search calls"`
	LLMMaxDelay    time.Duration `yaml:"llm_max_delay" json:"llm_max_delay" jsonschema:"default=60s,description=Backoff ceiling for model calls"`
}

// StorageConfig holds the artifact directory layout
type StorageConfig struct {
	RawDir       string `yaml:"raw_dir" json:"raw_dir" jsonschema:"default=data/raw,description=Raw collected records"`
	ProcessedDir string `yaml:"processed_dir" json:"processed_dir" jsonschema:"default=data/processed,description=Normalized recall records"`
	AnalyzedDir  string `yaml:"analyzed_dir" json:"analyzed_dir" jsonschema:"default=data/analyzed,description=Impact-enriched records"`
	ReportsDir   string `yaml:"reports_dir" json:"reports_dir" jsonschema:"default=reports,description=Generated Markdown reports"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// sources
	if cfg.Sources.FDAListingURL == "" {
		cfg.Sources.FDAListingURL = "https://www.fda.gov/safety/recalls-market-withdrawals-safety-alerts"
	}
	if cfg.Sources.FDADetailBase == "" {
		cfg.Sources.FDADetailBase = cfg.Sources.FDAListingURL + "/"
	}
	if len(cfg.Sources.FDASkipMarkers) == 0 {
		cfg.Sources.FDASkipMarkers = []string{
			"#main-content",
			"#search-form",
			"#section-nav",
			"#footer-heading",
			"datatables-data",
			"about-fda",
			"govdelivery",
			"archive",
			"additional-information-about-recalls",
		}
	}
	if cfg.Sources.USDAListingURL == "" {
		cfg.Sources.USDAListingURL = "https://www.fsis.usda.gov/recalls"
	}
	if cfg.Sources.USDALinkMarker == "" {
		cfg.Sources.USDALinkMarker = "/recalls-alerts/"
	}

	// crawler
	if cfg.Crawler.Endpoint == "" {
		cfg.Crawler.Endpoint = "https://api.firecrawl.dev"
	}
	if cfg.Crawler.Timeout == 0 {
		cfg.Crawler.Timeout = 60 * time.Second
	}

	// search
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = "https://api.tavily.com"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 10
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 30 * time.Second
	}

	// llm
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.5
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4096
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 120 * time.Second
	}

	// retry
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 5
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = 60 * time.Second
	}
	if cfg.Retry.SearchMaxDelay == 0 {
		cfg.Retry.SearchMaxDelay = 300 * time.Second
	}
	if cfg.Retry.LLMMaxDelay == 0 {
		cfg.Retry.LLMMaxDelay = 60 * time.Second
	}

	// storage
	if cfg.Storage.RawDir == "" {
		cfg.Storage.RawDir = "data/raw"
	}
	if cfg.Storage.ProcessedDir == "" {
		cfg.Storage.ProcessedDir = "data/processed"
	}
	if cfg.Storage.AnalyzedDir == "" {
		cfg.Storage.AnalyzedDir = "data/analyzed"
	}
	if cfg.Storage.ReportsDir == "" {
		cfg.Storage.ReportsDir = "reports"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if cfg.Retry.SearchMaxDelay < cfg.Retry.BaseDelay {
		return fmt.Errorf("retry.search_max_delay must not be below retry.base_delay")
	}
	if cfg.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be at least 1")
	}
	return nil
}

// GetSourcesConfig returns recall source configuration
func (c *Config) GetSourcesConfig() SourcesConfig { return c.Sources }

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig { return c.LLM }

// GetRetryConfig returns retry policy configuration
func (c *Config) GetRetryConfig() RetryConfig { return c.Retry }
