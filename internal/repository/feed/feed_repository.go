// Package feed downloads the supplier remnants archive and parses the
// spreadsheet inside it into inventory records.
package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/internal/domain/models"
	"github.com/avolkov/marketsync/pkg/clients/apierr"
)

// Column headers of the remnants spreadsheet.
const (
	codeHeader     = "Код"
	quantityHeader = "Количество"
	priceHeader    = "Цена"
)

// Repository fetches inventory from the remote zip archive.
type Repository struct {
	httpClient *resty.Client
	url        string
	headerRow  int
	logger     *zap.Logger
}

// NewRepository builds a feed repository for the configured archive URL.
func NewRepository(cfg config.FeedConfig, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.SetTimeout(60 * time.Second)

	return &Repository{
		httpClient: restyClient,
		url:        cfg.URL,
		headerRow:  cfg.HeaderRow,
		logger:     logger,
	}
}

// Fetch downloads the archive, extracts the first spreadsheet entry and
// parses it. Everything stays in memory; no temp files.
func (r *Repository) Fetch(ctx context.Context) ([]models.InventoryRecord, error) {
	resp, err := r.httpClient.R().SetContext(ctx).Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("download feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download feed: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}

	sheet, err := extractSpreadsheet(resp.Body())
	if err != nil {
		return nil, err
	}

	records, err := r.parseSpreadsheet(sheet)
	if err != nil {
		return nil, err
	}

	r.logger.Info("feed parsed", zap.Int("records", len(records)))
	return records, nil
}

func extractSpreadsheet(archive []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open feed archive: %w", err)
	}

	for _, file := range reader.File {
		name := strings.ToLower(file.Name)
		if !strings.HasSuffix(name, ".xls") && !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", file.Name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w", file.Name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("feed archive contains no spreadsheet")
}

func (r *Repository) parseSpreadsheet(content []byte) ([]models.InventoryRecord, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) <= r.headerRow {
		return nil, fmt.Errorf("spreadsheet has no header row at offset %d", r.headerRow)
	}

	codeCol, quantityCol, priceCol, err := locateColumns(rows[r.headerRow])
	if err != nil {
		return nil, err
	}

	var records []models.InventoryRecord
	for _, row := range rows[r.headerRow+1:] {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}
		records = append(records, models.InventoryRecord{
			Code:     code,
			Quantity: cell(row, quantityCol),
			Price:    cell(row, priceCol),
		})
	}
	return records, nil
}

func locateColumns(header []string) (code, quantity, price int, err error) {
	code, quantity, price = -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case codeHeader:
			code = i
		case quantityHeader:
			quantity = i
		case priceHeader:
			price = i
		}
	}
	if code < 0 || quantity < 0 || price < 0 {
		return 0, 0, 0, fmt.Errorf("spreadsheet header misses required columns %q, %q, %q", codeHeader, quantityHeader, priceHeader)
	}
	return code, quantity, price, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
