package ozon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/pkg/clients/apierr"
	"github.com/avolkov/marketsync/pkg/clients/ozon"
)

func testClient(t *testing.T, handler http.Handler) *ozon.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return ozon.NewClient(config.OzonConfig{
		ClientID: "client-1",
		APIKey:   "key-1",
		BaseURL:  server.URL,
	})
}

func TestOfferIDsPaginatesUntilTotal(t *testing.T) {
	var cursors []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/product/list", r.URL.Path)
		assert.Equal(t, "client-1", r.Header.Get("Client-Id"))
		assert.Equal(t, "key-1", r.Header.Get("Api-Key"))

		var req struct {
			Filter struct {
				Visibility string `json:"visibility"`
			} `json:"filter"`
			LastID string `json:"last_id"`
			Limit  int    `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ALL", req.Filter.Visibility)
		cursors = append(cursors, req.LastID)

		type item struct {
			OfferID string `json:"offer_id"`
		}
		page := struct {
			Items  []item `json:"items"`
			Total  int    `json:"total"`
			LastID string `json:"last_id"`
		}{Total: 3}
		if req.LastID == "" {
			page.Items = []item{{OfferID: "A"}, {OfferID: "B"}}
			page.LastID = "cursor-1"
		} else {
			page.Items = []item{{OfferID: "C"}}
			page.LastID = "cursor-2"
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"result": page})
	})

	client := testClient(t, handler)
	offerIDs, err := client.OfferIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, offerIDs)
	assert.Equal(t, []string{"", "cursor-1"}, cursors, "initial cursor must be sent exactly once")
}

func TestOfferIDsStopsOnEmptyPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"items":[],"total":5,"last_id":""}}`))
	})

	client := testClient(t, handler)
	offerIDs, err := client.OfferIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, offerIDs)
}

func TestUpdateStocksSendsBatch(t *testing.T) {
	var body struct {
		Stocks []ozon.StockItem `json:"stocks"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/product/import/stocks", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[]}`))
	})

	client := testClient(t, handler)
	err := client.UpdateStocks(context.Background(), []ozon.StockItem{
		{OfferID: "A", Stock: 100},
		{OfferID: "B", Stock: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []ozon.StockItem{{OfferID: "A", Stock: 100}, {OfferID: "B", Stock: 0}}, body.Stocks)
}

func TestUpdatePricesStatusError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusForbidden)
	})

	client := testClient(t, handler)
	err := client.UpdatePrices(context.Background(), []ozon.PriceItem{{OfferID: "A", Price: "5990"}})
	require.Error(t, err)

	var statusErr *apierr.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "invalid api key")
}
