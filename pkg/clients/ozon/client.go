// Package ozon is a thin client for the Ozon Seller API covering product
// listing and price/stock imports.
package ozon

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/pkg/clients/apierr"
)

const pageLimit = 1000

// Client exposes the Ozon Seller API operations used by the sync service.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds an Ozon API client using the provided configuration values.
func NewClient(cfg config.OzonConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.BaseURL).
		SetHeader("Client-Id", cfg.ClientID).
		SetHeader("Api-Key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{httpClient: restyClient}
}

// StockItem is one entry of a stock import batch.
type StockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// PriceItem is one entry of a price import batch. Price is a digit string,
// the way the import endpoint expects it.
type PriceItem struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

type productListRequest struct {
	Filter struct {
		Visibility string `json:"visibility"`
	} `json:"filter"`
	LastID string `json:"last_id"`
	Limit  int    `json:"limit"`
}

// ProductListPage is one page of the seller's catalog.
type ProductListPage struct {
	Items []struct {
		OfferID string `json:"offer_id"`
	} `json:"items"`
	Total  int    `json:"total"`
	LastID string `json:"last_id"`
}

type productListResponse struct {
	Result ProductListPage `json:"result"`
}

// ProductList fetches one catalog page starting after lastID.
func (c *Client) ProductList(ctx context.Context, lastID string) (*ProductListPage, error) {
	req := productListRequest{LastID: lastID, Limit: pageLimit}
	req.Filter.Visibility = "ALL"

	result := new(productListResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post("/v2/product/list")
	if err != nil {
		return nil, fmt.Errorf("ozon product list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ozon product list: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}

	return &result.Result, nil
}

// OfferIDs pages through the seller's catalog and returns every offer id.
// The endpoint signals completion by the accumulated item count reaching the
// reported total.
func (c *Client) OfferIDs(ctx context.Context) ([]string, error) {
	var offerIDs []string
	lastID := ""
	for {
		page, err := c.ProductList(ctx, lastID)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			offerIDs = append(offerIDs, item.OfferID)
		}
		if len(offerIDs) >= page.Total || len(page.Items) == 0 {
			break
		}
		lastID = page.LastID
	}
	return offerIDs, nil
}

// UpdateStocks imports one batch of stock counts.
func (c *Client) UpdateStocks(ctx context.Context, stocks []StockItem) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"stocks": stocks}).
		Post("/v1/product/import/stocks")
	if err != nil {
		return fmt.Errorf("ozon update stocks: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ozon update stocks: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}
	return nil
}

// UpdatePrices imports one batch of prices.
func (c *Client) UpdatePrices(ctx context.Context, prices []PriceItem) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"prices": prices}).
		Post("/v1/product/import/prices")
	if err != nil {
		return fmt.Errorf("ozon update prices: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ozon update prices: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}
	return nil
}
