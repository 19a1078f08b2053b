// Package sheets reads inventory from a Google Sheet, as an alternative to
// the zip feed when the supplier publishes remnants through a spreadsheet
// shared online.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/internal/domain/models"
)

// Expected header names, same as the zip feed spreadsheet.
const (
	codeHeader     = "Код"
	quantityHeader = "Количество"
	priceHeader    = "Цена"
)

// InventoryRepository reads inventory records from a spreadsheet range. The
// first row of the range is the header.
type InventoryRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewInventoryRepository builds a Google Sheets backed inventory source.
func NewInventoryRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*InventoryRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &InventoryRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		logger:        logger,
	}, nil
}

// Fetch reads the configured range and maps rows onto inventory records.
func (r *InventoryRepository) Fetch(ctx context.Context) ([]models.InventoryRecord, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.readRange, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("range %s is empty", r.readRange)
	}

	codeCol, quantityCol, priceCol := -1, -1, -1
	for i, name := range resp.Values[0] {
		switch strings.TrimSpace(fmt.Sprint(name)) {
		case codeHeader:
			codeCol = i
		case quantityHeader:
			quantityCol = i
		case priceHeader:
			priceCol = i
		}
	}
	if codeCol < 0 || quantityCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("sheet header misses required columns %q, %q, %q", codeHeader, quantityHeader, priceHeader)
	}

	var records []models.InventoryRecord
	for _, row := range resp.Values[1:] {
		code := cellValue(row, codeCol)
		if code == "" {
			continue
		}
		records = append(records, models.InventoryRecord{
			Code:     code,
			Quantity: cellValue(row, quantityCol),
			Price:    cellValue(row, priceCol),
		})
	}

	r.logger.Info("sheet inventory read", zap.Int("records", len(records)))
	return records, nil
}

func cellValue(row []interface{}, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}
