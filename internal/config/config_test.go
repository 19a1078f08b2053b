package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/marketsync/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OZON_CLIENT_ID", "client-1")
	t.Setenv("OZON_API_KEY", "key-1")
	t.Setenv("MARKET_TOKEN", "token-1")
	t.Setenv("MARKET_FBS_CAMPAIGN_ID", "1001")
	t.Setenv("MARKET_FBS_WAREHOUSE_ID", "2001")
	t.Setenv("MARKET_DBS_CAMPAIGN_ID", "1002")
	t.Setenv("MARKET_DBS_WAREHOUSE_ID", "2002")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api-seller.ozon.ru", cfg.Ozon.BaseURL)
	assert.Equal(t, 100, cfg.Ozon.StockBatchSize)
	assert.Equal(t, 900, cfg.Ozon.PriceBatchSize)
	assert.Equal(t, "https://api.partner.market.yandex.ru", cfg.Market.BaseURL)
	assert.Equal(t, 2000, cfg.Market.StockBatchSize)
	assert.Equal(t, 500, cfg.Market.PriceBatchSize)
	assert.Equal(t, "https://timeworld.ru/upload/files/ostatki.zip", cfg.Feed.URL)
	assert.Equal(t, 17, cfg.Feed.HeaderRow)
	assert.Equal(t, config.SourceFeed, cfg.Sync.Source)
	assert.Equal(t, "0 6 * * *", cfg.Sync.CronSchedule)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("OZON_STOCK_BATCH", "50")
	t.Setenv("MARKET_STOCK_BATCH", "1500")
	t.Setenv("FEED_HEADER_ROW", "3")
	t.Setenv("SYNC_CRON_SCHEDULE", "*/30 * * * *")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Ozon.StockBatchSize)
	assert.Equal(t, 1500, cfg.Market.StockBatchSize)
	assert.Equal(t, 3, cfg.Feed.HeaderRow)
	assert.Equal(t, "*/30 * * * *", cfg.Sync.CronSchedule)
}

func TestLoadMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OZON_API_KEY", "")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OZON_API_KEY")
}

func TestLoadSheetsSourceRequiresSheetConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INVENTORY_SOURCE", "sheets")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEETS_CREDENTIALS_PATH")

	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("INVENTORY_SHEET_ID", "sheet-1")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.SourceSheets, cfg.Sync.Source)
	assert.Equal(t, "Inventory!A:C", cfg.Sheets.ReadRange)
}

func TestLoadUnknownSource(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INVENTORY_SOURCE", "ftp")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVENTORY_SOURCE")
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OZON_PRICE_BATCH", "lots")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Ozon.PriceBatchSize)
}
