package reports

import (
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
)

// ProteinWeekly is one week of protein spend with its share of that week's
// total inventory spend.
type ProteinWeekly struct {
	WeekLabel string          `json:"week_label"`
	WeekStart time.Time       `json:"week_start"`
	Spend     decimal.Decimal `json:"spend"`
	PctOfInv  decimal.Decimal `json:"pct_of_inv"`
}

type PricePoint struct {
	Date         time.Time       `json:"date"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price"`
}

// ItemPriceTrend tracks supplier price creep for one protein item: the mean
// unit price per invoice date, ascending.
type ItemPriceTrend struct {
	Item   string       `json:"item"`
	Points []PricePoint `json:"points"`
}

// ProteinReport is the protein-budget view of the inventory series.
type ProteinReport struct {
	TotalSpend     decimal.Decimal  `json:"total_spend"`
	SharePct       decimal.Decimal  `json:"share_pct"`
	AvgWeeklySpend decimal.Decimal  `json:"avg_weekly_spend"`
	LatestWeekPct  decimal.Decimal  `json:"latest_week_pct"`
	Weekly         []ProteinWeekly  `json:"weekly"`
	TopItems       []ItemSpend      `json:"top_items"`
	PriceTrends    []ItemPriceTrend `json:"price_trends"`
}

// BuildProteinReport derives the protein series from the full ledger.
// trendItems caps how many top items get a unit-price trend.
func BuildProteinReport(items []models.InventoryLineItem, trendItems int) *ProteinReport {
	var protein []models.InventoryLineItem
	totalInv := decimal.Zero
	for _, it := range items {
		totalInv = totalInv.Add(it.TotalPrice)
		if it.Category == models.CategoryProtein {
			protein = append(protein, it)
		}
	}

	report := &ProteinReport{}
	for _, it := range protein {
		report.TotalSpend = report.TotalSpend.Add(it.TotalPrice)
	}
	report.SharePct = utils.RatioPct(report.TotalSpend, totalInv).Round(1)
	report.Weekly = proteinWeekly(items, protein)
	report.TopItems = itemTotals(protein)
	if trendItems > 0 && len(report.TopItems) > trendItems {
		report.PriceTrends = priceTrends(protein, report.TopItems[:trendItems])
	} else {
		report.PriceTrends = priceTrends(protein, report.TopItems)
	}

	if n := len(report.Weekly); n > 0 {
		spends := make([]decimal.Decimal, n)
		for i, w := range report.Weekly {
			spends[i] = w.Spend
		}
		report.AvgWeeklySpend = utils.MeanDecimal(spends)
		report.LatestWeekPct = report.Weekly[n-1].PctOfInv
	}
	return report
}

func proteinWeekly(all, protein []models.InventoryLineItem) []ProteinWeekly {
	invByWeek := make(map[string]decimal.Decimal)
	for _, it := range all {
		invByWeek[it.WeekLabel] = invByWeek[it.WeekLabel].Add(it.TotalPrice)
	}

	type wk struct {
		start time.Time
		spend decimal.Decimal
	}
	byWeek := make(map[string]*wk)
	for _, it := range protein {
		w, ok := byWeek[it.WeekLabel]
		if !ok {
			w = &wk{start: it.WeekStart}
			byWeek[it.WeekLabel] = w
		}
		w.spend = w.spend.Add(it.TotalPrice)
	}

	out := make([]ProteinWeekly, 0, len(byWeek))
	for label, w := range byWeek {
		out = append(out, ProteinWeekly{
			WeekLabel: label,
			WeekStart: w.start,
			Spend:     w.spend,
			PctOfInv:  utils.RatioPct(w.spend, invByWeek[label]).Round(1),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}

func priceTrends(protein []models.InventoryLineItem, top []ItemSpend) []ItemPriceTrend {
	trends := make([]ItemPriceTrend, 0, len(top))
	for _, item := range top {
		type acc struct {
			sum   decimal.Decimal
			count int64
		}
		byDate := make(map[time.Time]*acc)
		for _, it := range protein {
			if it.StandardItemName != item.Item {
				continue
			}
			day := time.Date(it.InvoiceDate.Year(), it.InvoiceDate.Month(), it.InvoiceDate.Day(), 0, 0, 0, 0, it.InvoiceDate.Location())
			a, ok := byDate[day]
			if !ok {
				a = &acc{}
				byDate[day] = a
			}
			a.sum = a.sum.Add(it.UnitPrice)
			a.count++
		}

		points := make([]PricePoint, 0, len(byDate))
		for date, a := range byDate {
			points = append(points, PricePoint{
				Date:         date,
				AvgUnitPrice: a.sum.Div(decimal.NewFromInt(a.count)),
			})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		trends = append(trends, ItemPriceTrend{Item: item.Item, Points: points})
	}
	return trends
}
