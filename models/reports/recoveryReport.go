package reports

import (
	"sort"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"github.com/shopspring/decimal"
)

// SuggestionCode identifies one recovery lever. The presentation layer owns
// the wording; the codes are stable identifiers.
type SuggestionCode string

const (
	// Always first: the discount rate is a contract term, not a lever.
	SuggestContractDiscountContext SuggestionCode = "contract_discount_context"

	SuggestWeekendCommunityOutreach SuggestionCode = "weekend_community_outreach"
	SuggestWeekendExclusiveMenu     SuggestionCode = "weekend_exclusive_menu"
	SuggestMondayEarlyLunchPush     SuggestionCode = "monday_early_lunch_push"
	SuggestTuesdayGroupOrders       SuggestionCode = "tuesday_group_orders"
	SuggestFridayLunchWindow        SuggestionCode = "friday_lunch_window"
	SuggestFridayWeekendBundle      SuggestionCode = "friday_weekend_bundle"

	SuggestCardCustomerMix SuggestionCode = "card_customer_mix"

	SuggestBelowBreakEvenRightSize SuggestionCode = "below_break_even_right_size"
	SuggestAboveBreakEvenUpside    SuggestionCode = "above_break_even_upside"

	SuggestScaleDownInventory SuggestionCode = "scale_down_inventory"
)

// Recommendation is the advisory bundle for one underperforming weekday.
type Recommendation struct {
	Day             string          `json:"day"`
	AvgGross        decimal.Decimal `json:"avg_gross"`
	AvgNet          decimal.Decimal `json:"avg_net"`
	AvgDiscountRate decimal.Decimal `json:"avg_discount_rate"`

	// GapToBreakEven is avg net minus the daily fixed cost (negative when
	// the day runs below break-even); GapToBestDay is the upside against
	// the strongest weekday's average net.
	GapToBreakEven decimal.Decimal `json:"gap_to_break_even"`
	GapToBestDay   decimal.Decimal `json:"gap_to_best_day"`
	BelowBreakEven bool            `json:"below_break_even"`

	Suggestions []SuggestionCode `json:"suggestions"`
}

// BuildRecovery ranks weekdays by average net sales ascending and builds a
// recommendation bundle for the bottom three. The suggestion list is a
// deterministic branch table keyed by weekday identity and the break-even
// comparison; its order is fixed.
func BuildRecovery(kpi *KPIReport, settings config.Settings) []Recommendation {
	if len(kpi.WeekdayStats) == 0 {
		return nil
	}

	ranked := make([]WeekdayStat, len(kpi.WeekdayStats))
	copy(ranked, kpi.WeekdayStats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgNet.LessThan(ranked[j].AvgNet)
	})

	bestNet := ranked[len(ranked)-1].AvgNet
	fixedCost := decimal.NewFromFloat(settings.DailyFixedCost)

	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}

	recs := make([]Recommendation, 0, n)
	for _, stat := range ranked[:n] {
		rec := Recommendation{
			Day:             stat.Day,
			AvgGross:        stat.AvgGross,
			AvgNet:          stat.AvgNet,
			AvgDiscountRate: stat.AvgDiscountRate,
			GapToBreakEven:  stat.AvgNet.Sub(fixedCost),
			GapToBestDay:    bestNet.Sub(stat.AvgNet),
		}
		rec.BelowBreakEven = rec.GapToBreakEven.IsNegative()
		rec.Suggestions = suggestionsFor(stat.Day, rec.BelowBreakEven)
		recs = append(recs, rec)
	}
	return recs
}

func suggestionsFor(day string, belowBreakEven bool) []SuggestionCode {
	codes := []SuggestionCode{SuggestContractDiscountContext}

	switch day {
	case "Saturday", "Sunday":
		codes = append(codes, SuggestWeekendCommunityOutreach, SuggestWeekendExclusiveMenu)
	case "Monday":
		codes = append(codes, SuggestMondayEarlyLunchPush)
	case "Tuesday":
		codes = append(codes, SuggestTuesdayGroupOrders)
	case "Friday":
		codes = append(codes, SuggestFridayLunchWindow, SuggestFridayWeekendBundle)
	}

	codes = append(codes, SuggestCardCustomerMix)

	if belowBreakEven {
		codes = append(codes, SuggestBelowBreakEvenRightSize)
	} else {
		codes = append(codes, SuggestAboveBreakEvenUpside)
	}

	return append(codes, SuggestScaleDownInventory)
}
