package models

import "time"

// Run statuses recorded in sync history.
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// TargetResult summarizes one marketplace target within a run. For
// Yandex.Market there is one result per campaign (FBS and DBS).
type TargetResult struct {
	Marketplace  string `bson:"marketplace" json:"marketplace"`
	CampaignID   string `bson:"campaign_id,omitempty" json:"campaign_id,omitempty"`
	Offers       int    `bson:"offers" json:"offers"`
	StocksSent   int    `bson:"stocks_sent" json:"stocks_sent"`
	ZeroFilled   int    `bson:"zero_filled" json:"zero_filled"`
	PricesSent   int    `bson:"prices_sent" json:"prices_sent"`
	StockBatches int    `bson:"stock_batches" json:"stock_batches"`
	PriceBatches int    `bson:"price_batches" json:"price_batches"`
}

// SyncRunReport is the persisted outcome of a full sync run.
type SyncRunReport struct {
	Trigger    string         `bson:"trigger" json:"trigger"`
	StartedAt  time.Time      `bson:"started_at" json:"started_at"`
	FinishedAt time.Time      `bson:"finished_at" json:"finished_at"`
	Records    int            `bson:"records" json:"records"`
	Targets    []TargetResult `bson:"targets" json:"targets"`
	Status     string         `bson:"status" json:"status"`
	Failure    string         `bson:"failure,omitempty" json:"failure,omitempty"`
	Error      string         `bson:"error,omitempty" json:"error,omitempty"`
}
