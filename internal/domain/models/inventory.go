package models

// InventoryRecord is one row of the supplier remnants feed. Quantity and
// Price keep their raw spreadsheet form; normalization happens at transform
// time because the feed uses sentinel tokens (">10") and suffixed prices
// ("5990.00 руб.").
type InventoryRecord struct {
	Code     string
	Quantity string
	Price    string
}
