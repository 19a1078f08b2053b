package sync

import (
	"strconv"
	"time"

	"github.com/avolkov/marketsync/internal/domain/models"
	"github.com/avolkov/marketsync/pkg/clients/ozon"
	"github.com/avolkov/marketsync/pkg/clients/yandex"
)

// BuildOzonStocks maps inventory records onto Ozon stock entries. Records
// matching an offer id consume it from the set; every id left over afterwards
// gets an explicit zero-quantity entry so stale counts are cleared. Matched
// entries come first in record order, then leftovers in listing order.
func BuildOzonStocks(records []models.InventoryRecord, offers *OfferSet) ([]ozon.StockItem, error) {
	var stocks []ozon.StockItem
	for _, record := range records {
		if !offers.Contains(record.Code) {
			continue
		}
		quantity, err := NormalizeQuantity(record.Quantity)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, ozon.StockItem{OfferID: record.Code, Stock: quantity})
		offers.Remove(record.Code)
	}
	for _, offerID := range offers.Remaining() {
		stocks = append(stocks, ozon.StockItem{OfferID: offerID, Stock: 0})
	}
	return stocks, nil
}

// BuildOzonPrices maps inventory records onto Ozon price entries. Records
// whose code is not a listed offer are skipped, as are records without a
// price. The offer set is read-only here.
func BuildOzonPrices(records []models.InventoryRecord, offers *OfferSet) ([]ozon.PriceItem, error) {
	var prices []ozon.PriceItem
	for _, record := range records {
		if !offers.Contains(record.Code) || record.Price == "" {
			continue
		}
		price, err := NormalizePrice(record.Price)
		if err != nil {
			return nil, err
		}
		prices = append(prices, ozon.PriceItem{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           record.Code,
			OldPrice:          "0",
			Price:             price,
		})
	}
	return prices, nil
}

// BuildMarketStocks maps inventory records onto Yandex.Market stock entries
// for one warehouse, with the same match/zero-fill contract as
// BuildOzonStocks. The timestamp is stamped once per build.
func BuildMarketStocks(records []models.InventoryRecord, offers *OfferSet, warehouseID string, now time.Time) ([]yandex.StockSKU, error) {
	updatedAt := now.UTC().Truncate(time.Second).Format(time.RFC3339)
	entry := func(sku string, count int) yandex.StockSKU {
		return yandex.StockSKU{
			SKU:         sku,
			WarehouseID: warehouseID,
			Items: []yandex.StockCount{
				{Count: count, Type: "FIT", UpdatedAt: updatedAt},
			},
		}
	}

	var stocks []yandex.StockSKU
	for _, record := range records {
		if !offers.Contains(record.Code) {
			continue
		}
		quantity, err := NormalizeQuantity(record.Quantity)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, entry(record.Code, quantity))
		offers.Remove(record.Code)
	}
	for _, offerID := range offers.Remaining() {
		stocks = append(stocks, entry(offerID, 0))
	}
	return stocks, nil
}

// BuildMarketPrices maps inventory records onto Yandex.Market price entries.
// Same skip rules as BuildOzonPrices; the value is an integer of whole
// roubles.
func BuildMarketPrices(records []models.InventoryRecord, offers *OfferSet) ([]yandex.OfferPrice, error) {
	var prices []yandex.OfferPrice
	for _, record := range records {
		if !offers.Contains(record.Code) || record.Price == "" {
			continue
		}
		digits, err := NormalizePrice(record.Price)
		if err != nil {
			return nil, err
		}
		value, err := strconv.Atoi(digits)
		if err != nil {
			return nil, &ParseError{Field: "price", Value: record.Price}
		}
		prices = append(prices, yandex.OfferPrice{
			ID:    record.Code,
			Price: yandex.PriceValue{Value: value, CurrencyID: "RUR"},
		})
	}
	return prices, nil
}
