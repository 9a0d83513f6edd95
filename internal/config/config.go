package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// API Configuration
	APIHost string `env:"API_HOST" envDefault:"0.0.0.0"`
	APIPort string `env:"API_PORT" envDefault:"8080"`

	Ebay  EbayConfig  `envPrefix:"EBAY_"`
	Wix   WixConfig   `envPrefix:"WIX_"`
	Sync  SyncConfig  `envPrefix:"SYNC_"`
	Kafka KafkaConfig `envPrefix:"KAFKA_"`
}

// EbayConfig holds the source marketplace credentials and endpoints.
type EbayConfig struct {
	StoreName   string   `env:"STORE_NAME,required,notEmpty"`
	AppID       string   `env:"APP_ID,required,notEmpty"`
	CertID      string   `env:"CERT_ID,required,notEmpty"`
	DevID       string   `env:"DEV_ID"`
	AuthToken   string   `env:"AUTH_TOKEN"`
	RedirectURI string   `env:"REDIRECT_URI"`
	SiteID      string   `env:"SITE_ID" envDefault:"0"`
	FindingURL  string   `env:"FINDING_URL" envDefault:"https://svcs.ebay.com/services/search/FindingService/v1"`
	ShoppingURL string   `env:"SHOPPING_URL" envDefault:"https://open.api.ebay.com/shopping"`
	TokenURL    string   `env:"TOKEN_URL" envDefault:"https://api.ebay.com/identity/v1/oauth2/token"`
	Scopes      []string `env:"SCOPES" envDefault:"https://api.ebay.com/oauth/api_scope" envSeparator:","`
}

// WixConfig holds the destination catalog credentials.
type WixConfig struct {
	APIToken string `env:"API_TOKEN,required,notEmpty"`
	SiteID   string `env:"SITE_ID,required,notEmpty"`
	BaseURL  string `env:"BASE_URL" envDefault:"https://www.wixapis.com"`
}

// SyncConfig tunes paging, batching and pacing of a run.
type SyncConfig struct {
	PageSize             int           `env:"PAGE_SIZE" envDefault:"100"`
	MaxPages             int           `env:"MAX_PAGES" envDefault:"10"`
	BatchSize            int           `env:"BATCH_SIZE" envDefault:"10"`
	MinCallInterval      time.Duration `env:"MIN_CALL_INTERVAL" envDefault:"1s"`
	PageRetryPause       time.Duration `env:"PAGE_RETRY_PAUSE" envDefault:"2s"`
	BatchPause           time.Duration `env:"BATCH_PAUSE" envDefault:"2s"`
	Interval             time.Duration `env:"INTERVAL" envDefault:"1m"`
	TokenRefreshInterval time.Duration `env:"TOKEN_REFRESH_INTERVAL" envDefault:"110m"`
	DescriptionMaxLength int           `env:"DESCRIPTION_MAX_LENGTH" envDefault:"8000"`
	MetaDescriptionMax   int           `env:"META_DESCRIPTION_MAX_LENGTH" envDefault:"160"`
	DefaultCurrency      string        `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	BrandPlaceholder     string        `env:"BRAND_PLACEHOLDER" envDefault:"Unbranded"`
}

// KafkaConfig enables sync event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"storesync-events"`
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sync.PageSize <= 0 {
		return fmt.Errorf("SYNC_PAGE_SIZE must be positive, got %d", c.Sync.PageSize)
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("SYNC_BATCH_SIZE must be positive, got %d", c.Sync.BatchSize)
	}
	if c.Sync.MaxPages <= 0 {
		return fmt.Errorf("SYNC_MAX_PAGES must be positive, got %d", c.Sync.MaxPages)
	}
	if c.Sync.Interval <= 0 || c.Sync.TokenRefreshInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL and SYNC_TOKEN_REFRESH_INTERVAL must be positive")
	}
	return nil
}
