// Package sync holds the core logic of the service: normalizing inventory
// feed values, building marketplace payloads, chunked uploads and the run
// orchestration across Ozon and both Yandex.Market campaigns.
package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/internal/domain/models"
	"github.com/avolkov/marketsync/pkg/clients/apierr"
	"github.com/avolkov/marketsync/pkg/clients/ozon"
	"github.com/avolkov/marketsync/pkg/clients/yandex"
)

// ErrRunInProgress is returned when a trigger arrives while a run is active.
var ErrRunInProgress = errors.New("sync run already in progress")

// InventorySource delivers the current supplier inventory.
type InventorySource interface {
	Fetch(ctx context.Context) ([]models.InventoryRecord, error)
}

// OzonAPI is the slice of the Ozon client the orchestrator needs.
type OzonAPI interface {
	OfferIDs(ctx context.Context) ([]string, error)
	UpdateStocks(ctx context.Context, stocks []ozon.StockItem) error
	UpdatePrices(ctx context.Context, prices []ozon.PriceItem) error
}

// MarketAPI is the slice of the Yandex.Market client the orchestrator needs.
type MarketAPI interface {
	OfferIDs(ctx context.Context, campaignID string) ([]string, error)
	UpdateStocks(ctx context.Context, campaignID string, skus []yandex.StockSKU) error
	UpdatePrices(ctx context.Context, campaignID string, offers []yandex.OfferPrice) error
}

// RunStore persists run reports. May be nil when no store is configured.
type RunStore interface {
	SaveRun(ctx context.Context, report models.SyncRunReport) error
}

// Service orchestrates full sync runs: one inventory fetch, then Ozon, then
// the Yandex.Market FBS and DBS campaigns, strictly sequentially.
type Service struct {
	cfg    config.Config
	source InventorySource
	ozon   OzonAPI
	market MarketAPI
	store  RunStore
	logger *zap.Logger

	mu gosync.Mutex
}

// NewService wires a sync service instance. store may be nil.
func NewService(cfg config.Config, source InventorySource, ozonAPI OzonAPI, marketAPI MarketAPI, store RunStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		source: source,
		ozon:   ozonAPI,
		market: marketAPI,
		store:  store,
		logger: logger,
	}
}

// Run executes a full sync and blocks until it finishes. Returns
// ErrRunInProgress without doing anything when another run is active.
func (s *Service) Run(ctx context.Context, trigger string) (*models.SyncRunReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()
	return s.run(ctx, trigger)
}

// Start launches a full sync in the background, bounded by the configured run
// timeout. Returns ErrRunInProgress when another run is active.
func (s *Service) Start(trigger string) error {
	if !s.mu.TryLock() {
		return ErrRunInProgress
	}
	go func() {
		defer s.mu.Unlock()
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Sync.RunTimeout)
		defer cancel()
		_, _ = s.run(ctx, trigger)
	}()
	return nil
}

func (s *Service) run(ctx context.Context, trigger string) (*models.SyncRunReport, error) {
	report := &models.SyncRunReport{
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
		Status:    models.RunStatusOK,
	}
	s.logger.Info("sync run started", zap.String("trigger", trigger))

	err := s.runTargets(ctx, report)
	report.FinishedAt = time.Now().UTC()
	if err != nil {
		report.Status = models.RunStatusFailed
		report.Error = err.Error()
		report.Failure = s.reportFailure(err)
	} else {
		s.logger.Info("sync run finished",
			zap.Int("records", report.Records),
			zap.Int("targets", len(report.Targets)),
			zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	}

	s.saveReport(report)
	return report, err
}

func (s *Service) runTargets(ctx context.Context, report *models.SyncRunReport) error {
	records, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}
	report.Records = len(records)
	s.logger.Info("inventory fetched", zap.Int("records", len(records)))

	ozonResult, err := s.syncOzon(ctx, records)
	report.Targets = append(report.Targets, ozonResult)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, campaign := range []config.CampaignConfig{s.cfg.Market.FBS, s.cfg.Market.DBS} {
		result, err := s.syncMarketCampaign(ctx, records, campaign, now)
		report.Targets = append(report.Targets, result)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) syncOzon(ctx context.Context, records []models.InventoryRecord) (models.TargetResult, error) {
	result := models.TargetResult{Marketplace: "ozon"}

	offerIDs, err := s.ozon.OfferIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("ozon: list offers: %w", err)
	}
	result.Offers = len(offerIDs)

	working := NewOfferSet(offerIDs)
	stocks, err := BuildOzonStocks(records, working)
	if err != nil {
		return result, fmt.Errorf("ozon: build stocks: %w", err)
	}
	result.StocksSent = len(stocks)
	result.ZeroFilled = working.Len()

	sent, err := uploadBatches(ctx, stocks, s.cfg.Ozon.StockBatchSize, s.ozon.UpdateStocks)
	result.StockBatches = sent
	if err != nil {
		return result, fmt.Errorf("ozon: update stocks: %w", err)
	}

	prices, err := BuildOzonPrices(records, NewOfferSet(offerIDs))
	if err != nil {
		return result, fmt.Errorf("ozon: build prices: %w", err)
	}
	result.PricesSent = len(prices)

	sent, err = uploadBatches(ctx, prices, s.cfg.Ozon.PriceBatchSize, s.ozon.UpdatePrices)
	result.PriceBatches = sent
	if err != nil {
		return result, fmt.Errorf("ozon: update prices: %w", err)
	}

	s.logger.Info("ozon synced",
		zap.Int("offers", result.Offers),
		zap.Int("stocks", result.StocksSent),
		zap.Int("zero_filled", result.ZeroFilled),
		zap.Int("prices", result.PricesSent))
	return result, nil
}

func (s *Service) syncMarketCampaign(ctx context.Context, records []models.InventoryRecord, campaign config.CampaignConfig, now time.Time) (models.TargetResult, error) {
	result := models.TargetResult{Marketplace: "yandex-market", CampaignID: campaign.CampaignID}

	offerIDs, err := s.market.OfferIDs(ctx, campaign.CampaignID)
	if err != nil {
		return result, fmt.Errorf("market %s: list offers: %w", campaign.CampaignID, err)
	}
	result.Offers = len(offerIDs)

	working := NewOfferSet(offerIDs)
	stocks, err := BuildMarketStocks(records, working, campaign.WarehouseID, now)
	if err != nil {
		return result, fmt.Errorf("market %s: build stocks: %w", campaign.CampaignID, err)
	}
	result.StocksSent = len(stocks)
	result.ZeroFilled = working.Len()

	sent, err := uploadBatches(ctx, stocks, s.cfg.Market.StockBatchSize, func(ctx context.Context, batch []yandex.StockSKU) error {
		return s.market.UpdateStocks(ctx, campaign.CampaignID, batch)
	})
	result.StockBatches = sent
	if err != nil {
		return result, fmt.Errorf("market %s: update stocks: %w", campaign.CampaignID, err)
	}

	prices, err := BuildMarketPrices(records, NewOfferSet(offerIDs))
	if err != nil {
		return result, fmt.Errorf("market %s: build prices: %w", campaign.CampaignID, err)
	}
	result.PricesSent = len(prices)

	sent, err = uploadBatches(ctx, prices, s.cfg.Market.PriceBatchSize, func(ctx context.Context, batch []yandex.OfferPrice) error {
		return s.market.UpdatePrices(ctx, campaign.CampaignID, batch)
	})
	result.PriceBatches = sent
	if err != nil {
		return result, fmt.Errorf("market %s: update prices: %w", campaign.CampaignID, err)
	}

	s.logger.Info("market campaign synced",
		zap.String("campaign_id", campaign.CampaignID),
		zap.Int("offers", result.Offers),
		zap.Int("stocks", result.StocksSent),
		zap.Int("zero_filled", result.ZeroFilled),
		zap.Int("prices", result.PricesSent))
	return result, nil
}

// reportFailure logs the failure under its classified category and returns
// the category name for the persisted report. This is the single recovery
// point of a run; everything below it propagates errors unmodified.
func (s *Service) reportFailure(err error) string {
	kind := apierr.Classify(err)
	switch kind {
	case apierr.KindTimeout:
		s.logger.Error("sync run timed out waiting for a response", zap.Error(err))
	case apierr.KindConnection:
		s.logger.Error("sync run failed to reach a remote host", zap.Error(err))
	case apierr.KindStatus:
		var statusErr *apierr.StatusError
		errors.As(err, &statusErr)
		s.logger.Error("sync run rejected by remote API",
			zap.Int("status", statusErr.StatusCode),
			zap.Error(err))
	default:
		s.logger.Error("sync run failed", zap.Error(err))
	}
	return kind.String()
}

func (s *Service) saveReport(report *models.SyncRunReport) {
	if s.store == nil {
		return
	}
	// The run context may already be cancelled; history writes get their own.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.SaveRun(ctx, *report); err != nil {
		s.logger.Error("failed to persist run report", zap.Error(err))
	}
}
