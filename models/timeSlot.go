package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// slotSortSentinel orders slots whose label has no parsable time-of-day
// after every parsable one, keeping the overall order deterministic.
const slotSortSentinel = 1 << 20

// TimeSlotRecord is the sales of one intraday slot of one day.
type TimeSlotRecord struct {
	Date  time.Time       `json:"date"`
	Day   string          `json:"day"`
	Slot  string          `json:"slot"`
	Sales decimal.Decimal `json:"sales"`
	Txns  decimal.Decimal `json:"txns"`

	// AvgTicket = sales/txns, zero when the slot has no transactions.
	AvgTicket decimal.Decimal `json:"avg_ticket"`
}

func (r *TimeSlotRecord) Derive() {
	if r.Txns.IsPositive() {
		r.AvgTicket = r.Sales.Div(r.Txns)
	} else {
		r.AvgTicket = decimal.Zero
	}
}

// SortKey converts the slot label into a minute-of-day index. Labels look
// like "11:15 AM - 11:30 AM"; only the range start matters.
func (r *TimeSlotRecord) SortKey() int {
	start := r.Slot
	if i := strings.Index(start, " - "); i >= 0 {
		start = start[:i]
	}
	t, err := time.Parse("3:04 PM", strings.TrimSpace(start))
	if err != nil {
		return slotSortSentinel
	}
	return t.Hour()*60 + t.Minute()
}
