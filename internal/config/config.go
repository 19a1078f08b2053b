package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Inventory source selectors.
const (
	SourceFeed   = "feed"
	SourceSheets = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Ozon    OzonConfig
	Market  MarketConfig
	Feed    FeedConfig
	Sheets  SheetsConfig
	Sync    SyncConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// OzonConfig contains credentials and batch limits for the Ozon Seller API.
type OzonConfig struct {
	ClientID       string
	APIKey         string
	BaseURL        string
	StockBatchSize int
	PriceBatchSize int
}

// CampaignConfig binds a Yandex.Market campaign to its warehouse.
type CampaignConfig struct {
	CampaignID  string
	WarehouseID string
}

// MarketConfig contains credentials, campaigns and batch limits for the
// Yandex.Market partner API.
type MarketConfig struct {
	Token          string
	BaseURL        string
	FBS            CampaignConfig
	DBS            CampaignConfig
	StockBatchSize int
	PriceBatchSize int
}

// FeedConfig describes the supplier remnants archive.
type FeedConfig struct {
	URL string
	// HeaderRow is the number of leading rows to skip before the header row
	// of the spreadsheet inside the archive.
	HeaderRow int
}

// SheetsConfig configures the alternate Google Sheets inventory source.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReadRange       string
}

// SyncConfig holds scheduler and orchestration settings.
type SyncConfig struct {
	Source       string
	CronSchedule string
	RunTimeout   time.Duration
}

// MongoDBConfig holds settings for the optional run-history store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Ozon: OzonConfig{
			ClientID:       os.Getenv("OZON_CLIENT_ID"),
			APIKey:         os.Getenv("OZON_API_KEY"),
			BaseURL:        getenvWithDefault("OZON_BASE_URL", "https://api-seller.ozon.ru"),
			StockBatchSize: getenvIntWithDefault("OZON_STOCK_BATCH", 100),
			PriceBatchSize: getenvIntWithDefault("OZON_PRICE_BATCH", 900),
		},
		Market: MarketConfig{
			Token:   os.Getenv("MARKET_TOKEN"),
			BaseURL: getenvWithDefault("MARKET_BASE_URL", "https://api.partner.market.yandex.ru"),
			FBS: CampaignConfig{
				CampaignID:  os.Getenv("MARKET_FBS_CAMPAIGN_ID"),
				WarehouseID: os.Getenv("MARKET_FBS_WAREHOUSE_ID"),
			},
			DBS: CampaignConfig{
				CampaignID:  os.Getenv("MARKET_DBS_CAMPAIGN_ID"),
				WarehouseID: os.Getenv("MARKET_DBS_WAREHOUSE_ID"),
			},
			StockBatchSize: getenvIntWithDefault("MARKET_STOCK_BATCH", 2000),
			PriceBatchSize: getenvIntWithDefault("MARKET_PRICE_BATCH", 500),
		},
		Feed: FeedConfig{
			URL:       getenvWithDefault("FEED_URL", "https://timeworld.ru/upload/files/ostatki.zip"),
			HeaderRow: getenvIntWithDefault("FEED_HEADER_ROW", 17),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("INVENTORY_SHEET_ID"),
			ReadRange:       getenvWithDefault("INVENTORY_SHEET_RANGE", "Inventory!A:C"),
		},
		Sync: SyncConfig{
			Source:       getenvWithDefault("INVENTORY_SOURCE", SourceFeed),
			CronSchedule: getenvWithDefault("SYNC_CRON_SCHEDULE", "0 6 * * *"),
			RunTimeout:   time.Duration(getenvIntWithDefault("SYNC_RUN_TIMEOUT_MIN", 10)) * time.Minute,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "marketsync"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Ozon.ClientID == "":
		return errors.New("OZON_CLIENT_ID must be provided")
	case c.Ozon.APIKey == "":
		return errors.New("OZON_API_KEY must be provided")
	case c.Ozon.StockBatchSize <= 0 || c.Ozon.PriceBatchSize <= 0:
		return errors.New("ozon batch sizes must be positive")
	}

	switch {
	case c.Market.Token == "":
		return errors.New("MARKET_TOKEN must be provided")
	case c.Market.FBS.CampaignID == "":
		return errors.New("MARKET_FBS_CAMPAIGN_ID must be provided")
	case c.Market.FBS.WarehouseID == "":
		return errors.New("MARKET_FBS_WAREHOUSE_ID must be provided")
	case c.Market.DBS.CampaignID == "":
		return errors.New("MARKET_DBS_CAMPAIGN_ID must be provided")
	case c.Market.DBS.WarehouseID == "":
		return errors.New("MARKET_DBS_WAREHOUSE_ID must be provided")
	case c.Market.StockBatchSize <= 0 || c.Market.PriceBatchSize <= 0:
		return errors.New("market batch sizes must be positive")
	}

	switch c.Sync.Source {
	case SourceFeed:
		if c.Feed.URL == "" {
			return errors.New("FEED_URL must be provided")
		}
		if c.Feed.HeaderRow < 0 {
			return errors.New("FEED_HEADER_ROW must not be negative")
		}
	case SourceSheets:
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("INVENTORY_SHEET_ID must be provided")
		}
	default:
		return fmt.Errorf("unknown INVENTORY_SOURCE %q", c.Sync.Source)
	}

	if c.Sync.CronSchedule == "" {
		return errors.New("SYNC_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
