package models

import (
	"os"
	"sort"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Recognized row labels of a daily sales sheet. Matching is exact and
// case-sensitive; unrecognized labels are ignored so the register can add
// rows without breaking ingestion.
const (
	labelGrossBefore = "Gross Sales Before Discounts"
	labelDiscounts   = "Total Discounts"
	labelNetSales    = "Sales Net VAT"
	labelCreditCard  = "Credit Card"
	labelCash        = "Cash"

	// timeSlotsMarker begins the intraday block. Case-insensitive.
	timeSlotsMarker = "time_slots"

	// slotTerminator ends the intraday block, as does a blank label cell.
	slotTerminator = "total"
)

// dateLayouts are the sheet-name and cell date formats the exports have
// been seen to use.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"Jan 2, 2006",
	"Jan 2 2006",
}

func parseCellDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SalesData is the output of one sales-workbook ingestion: the daily series
// sorted by date plus the union of every sheet's intraday slots.
type SalesData struct {
	Days  []DailySalesRecord `json:"days"`
	Slots []TimeSlotRecord   `json:"slots"`
}

// LoadSalesWorkbook parses a workbook with one sheet per calendar day, the
// sheet name being the date. Sheets whose name does not parse as a date are
// skipped; a malformed cell degrades that one field to absence; a slot row
// that fails numeric parsing is dropped alone. Only a workbook yielding
// zero parsable sheets is an error (SchemaError).
func LoadSalesWorkbook(path string, cache *LoaderCache) (*SalesData, error) {
	logger := config.GetLogger()

	info, err := os.Stat(path)
	if err != nil {
		return nil, utils.NewSchemaError("sales workbook", "cannot stat %s: %v", path, err)
	}
	if v, ok := cache.lookup(path, info); ok {
		return v.(*SalesData), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, utils.NewSchemaError("sales workbook", "cannot open %s: %v", path, err)
	}
	defer f.Close()

	data := &SalesData{}
	for _, sheet := range f.GetSheetList() {
		date, ok := parseCellDate(sheet)
		if !ok {
			logger.WithField("sheet", sheet).Debug("sales sheet name is not a date, skipped")
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			logger.WithField("sheet", sheet).WithError(err).Debug("sales sheet unreadable, skipped")
			continue
		}
		rec := parseDailySheet(date, rows, &data.Slots)
		data.Days = append(data.Days, rec)
	}

	if len(data.Days) == 0 {
		return nil, utils.NewSchemaError("sales workbook", "no sheet name in %s parses as a date", path)
	}
	sort.Slice(data.Days, func(i, j int) bool {
		return data.Days[i].Date.Before(data.Days[j].Date)
	})

	cache.store(path, info, data)
	return data, nil
}

func parseDailySheet(date time.Time, rows [][]string, slots *[]TimeSlotRecord) DailySalesRecord {
	rec := DailySalesRecord{Date: date}
	if len(rows) > 1 && len(rows[1]) > 1 {
		rec.Day = strings.TrimSpace(rows[1][1])
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		var raw string
		if len(row) > 1 {
			raw = row[1]
		}
		v, ok := utils.CellDecimal(raw)
		if !ok {
			// Missing or malformed value: the field stays at its zero default.
			continue
		}
		switch key {
		case labelGrossBefore:
			rec.GrossBefore = v
		case labelDiscounts:
			rec.Discounts = v
		case labelNetSales:
			rec.NetSales = v
		case labelCreditCard:
			rec.CreditCard = v
		case labelCash:
			rec.Cash = v
		}
	}

	if start := findSlotBlock(rows); start >= 0 {
		parseSlotBlock(date, rec.Day, rows[start+1:], slots)
	}

	rec.Derive()
	return rec
}

func findSlotBlock(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), timeSlotsMarker) {
			return i
		}
	}
	return -1
}

func parseSlotBlock(date time.Time, day string, rows [][]string, slots *[]TimeSlotRecord) {
	logger := config.GetLogger()
	for _, row := range rows {
		var label string
		if len(row) > 0 {
			label = strings.TrimSpace(row[0])
		}
		if label == "" || strings.EqualFold(label, slotTerminator) {
			return
		}
		if len(row) < 2 {
			continue
		}
		sales, ok := utils.CellDecimal(row[1])
		if !ok {
			logger.WithFields(map[string]any{"date": date.Format("2006-01-02"), "slot": label}).
				Debug("slot row with non-numeric sales, skipped")
			continue
		}
		txns := decimal.Zero
		if len(row) > 2 {
			if v, ok := utils.CellDecimal(row[2]); ok {
				txns = v
			}
		}
		slot := TimeSlotRecord{Date: date, Day: day, Slot: label, Sales: sales, Txns: txns}
		slot.Derive()
		*slots = append(*slots, slot)
	}
}
