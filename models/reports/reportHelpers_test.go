package reports

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"github.com/shopspring/decimal"
)

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testDay(t *testing.T, date, day string, gross, disc, net, cc float64) models.DailySalesRecord {
	t.Helper()
	rec := models.DailySalesRecord{
		Date:        testDate(t, date),
		Day:         day,
		GrossBefore: decimal.NewFromFloat(gross),
		Discounts:   decimal.NewFromFloat(disc),
		NetSales:    decimal.NewFromFloat(net),
		CreditCard:  decimal.NewFromFloat(cc),
		Cash:        decimal.NewFromFloat(net - cc),
	}
	rec.Derive()
	return rec
}

func testItem(t *testing.T, date, vendor, category, sub, name string, qty, unit, total float64) models.InventoryLineItem {
	t.Helper()
	item := models.InventoryLineItem{
		InvoiceDate:      testDate(t, date),
		Vendor:           vendor,
		Category:         category,
		Subcategory:      sub,
		StandardItemName: name,
		Qty:              decimal.NewFromFloat(qty),
		UnitPrice:        decimal.NewFromFloat(unit),
		TotalPrice:       decimal.NewFromFloat(total),
		InvoiceNo:        "INV-" + date,
	}
	item.Derive()
	return item
}

func testSlot(t *testing.T, date, label string, sales, txns float64) models.TimeSlotRecord {
	t.Helper()
	slot := models.TimeSlotRecord{
		Date:  testDate(t, date),
		Slot:  label,
		Sales: decimal.NewFromFloat(sales),
		Txns:  decimal.NewFromFloat(txns),
	}
	slot.Derive()
	return slot
}

func requireDecimal(t *testing.T, got decimal.Decimal, want string, what string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
