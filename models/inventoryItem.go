package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCategory    = "Uncategorized"
	DefaultSubcategory = "General"

	// CategoryProtein drives the protein-budget rule.
	CategoryProtein = "PROTEIN"
)

// PerishableCategories is the fixed spoilage-watch set.
var PerishableCategories = []string{
	"PRODUCE",
	"DAIRY PROD & SUBS",
	"PROTEIN",
	"SEAFOOD",
	"GROCERY REFRIGERATED",
}

// InventoryLineItem is one purchased line on one invoice from the ledger.
type InventoryLineItem struct {
	InvoiceDate      time.Time       `json:"invoice_date"`
	Vendor           string          `json:"vendor"`
	Category         string          `json:"category"`
	Subcategory      string          `json:"subcategory"`
	StandardItemName string          `json:"standard_item_name"`
	Qty              decimal.Decimal `json:"qty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	InvoiceNo        string          `json:"invoice_no"`

	WeekLabel string    `json:"week_label"`
	WeekStart time.Time `json:"week_start"`
}

func (it *InventoryLineItem) Derive() {
	it.WeekLabel, it.WeekStart = WeekOf(it.InvoiceDate)
}

func (it *InventoryLineItem) IsPerishable() bool {
	for _, c := range PerishableCategories {
		if it.Category == c {
			return true
		}
	}
	return false
}
