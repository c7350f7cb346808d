package models

import (
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
)

// DailySalesRecord is one calendar day of register totals, parsed from one
// sheet of the sales workbook.
//
// NetSales is the stored "Sales Net VAT" figure. The register occasionally
// rounds so that net != gross - discounts; the stored value wins and is
// never recomputed.
type DailySalesRecord struct {
	Date        time.Time       `json:"date"`
	Day         string          `json:"day"`
	GrossBefore decimal.Decimal `json:"gross_before"`
	Discounts   decimal.Decimal `json:"discounts"`
	NetSales    decimal.Decimal `json:"net_sales"`
	CreditCard  decimal.Decimal `json:"credit_card"`
	Cash        decimal.Decimal `json:"cash"`

	// DiscountRate = discounts/gross*100, zero when gross is zero.
	DiscountRate decimal.Decimal `json:"discount_rate"`

	WeekLabel string    `json:"week_label"`
	WeekStart time.Time `json:"week_start"`
}

// Derive fills the computed fields once the parsed fields are final.
func (r *DailySalesRecord) Derive() {
	r.DiscountRate = utils.RatioPct(r.Discounts, r.GrossBefore)
	r.WeekLabel, r.WeekStart = WeekOf(r.Date)
}
