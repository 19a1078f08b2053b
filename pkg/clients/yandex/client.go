// Package yandex is a thin client for the Yandex.Market partner API covering
// offer mappings and per-campaign price/stock updates.
package yandex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/pkg/clients/apierr"
)

const pageLimit = 200

// Client exposes the Yandex.Market partner API operations used by the sync
// service. Every operation is scoped to a campaign id (FBS or DBS).
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a Yandex.Market API client using the provided
// configuration values.
func NewClient(cfg config.MarketConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token)).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{httpClient: restyClient}
}

// StockCount is one warehouse stock measurement.
type StockCount struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

// StockSKU is one entry of a stock update batch.
type StockSKU struct {
	SKU         string       `json:"sku"`
	WarehouseID string       `json:"warehouseId"`
	Items       []StockCount `json:"items"`
}

// PriceValue is a price with its currency.
type PriceValue struct {
	Value      int    `json:"value"`
	CurrencyID string `json:"currencyId"`
}

// OfferPrice is one entry of a price update batch.
type OfferPrice struct {
	ID    string     `json:"id"`
	Price PriceValue `json:"price"`
}

// OfferMappingPage is one page of a campaign's offer mappings.
type OfferMappingPage struct {
	OfferMappingEntries []struct {
		Offer struct {
			ShopSKU string `json:"shopSku"`
		} `json:"offer"`
	} `json:"offerMappingEntries"`
	Paging struct {
		NextPageToken string `json:"nextPageToken"`
	} `json:"paging"`
}

type offerMappingResponse struct {
	Result OfferMappingPage `json:"result"`
}

// OfferMappingEntries fetches one page of the campaign's offer mappings.
func (c *Client) OfferMappingEntries(ctx context.Context, campaignID, pageToken string) (*OfferMappingPage, error) {
	result := new(offerMappingResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page_token", pageToken).
		SetQueryParam("limit", strconv.Itoa(pageLimit)).
		SetResult(result).
		Get(fmt.Sprintf("/campaigns/%s/offer-mapping-entries", campaignID))
	if err != nil {
		return nil, fmt.Errorf("market offer mappings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market offer mappings: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}

	return &result.Result, nil
}

// OfferIDs pages through the campaign's offer mappings and returns every shop
// SKU. The endpoint signals completion with an empty nextPageToken.
func (c *Client) OfferIDs(ctx context.Context, campaignID string) ([]string, error) {
	var offerIDs []string
	pageToken := ""
	for {
		page, err := c.OfferMappingEntries(ctx, campaignID, pageToken)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.OfferMappingEntries {
			offerIDs = append(offerIDs, entry.Offer.ShopSKU)
		}
		pageToken = page.Paging.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return offerIDs, nil
}

// UpdateStocks pushes one batch of warehouse stock counts for the campaign.
func (c *Client) UpdateStocks(ctx context.Context, campaignID string, skus []StockSKU) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"skus": skus}).
		Put(fmt.Sprintf("/campaigns/%s/offers/stocks", campaignID))
	if err != nil {
		return fmt.Errorf("market update stocks: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("market update stocks: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}
	return nil
}

// UpdatePrices pushes one batch of offer prices for the campaign.
func (c *Client) UpdatePrices(ctx context.Context, campaignID string, offers []OfferPrice) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"offers": offers}).
		Post(fmt.Sprintf("/campaigns/%s/offer-prices/updates", campaignID))
	if err != nil {
		return fmt.Errorf("market update prices: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("market update prices: %w", &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}
	return nil
}
