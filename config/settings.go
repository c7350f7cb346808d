package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Settings is the full per-run configuration of the metrics pipeline.
// It is built once (env or caller) and threaded through every component;
// nothing downstream reads the environment directly.
//
// Rates and thresholds are whole percentages (20 means 20%), matching how
// they arrive from the operator. Percentile fields are whole percents of
// the slot population (PeakSlotTopPct=10 means the top 10% of slots).
type Settings struct {
	SalesWorkbookPath   string `json:"sales_workbook_path" validate:"required"`
	InventoryLedgerPath string `json:"inventory_ledger_path" validate:"required"`

	// CommissionRatePct and CreditCardFeePct feed only the net-after-fees
	// KPI; food-cost ratios never see them.
	CommissionRatePct float64 `json:"commission_rate_pct" validate:"gte=0,lte=100"`
	CreditCardFeePct  float64 `json:"credit_card_fee_pct" validate:"gte=0,lte=10"`

	TargetFoodCostPct float64 `json:"target_food_cost_pct" validate:"gte=10,lte=70"`
	DailyFixedCost    float64 `json:"daily_fixed_cost" validate:"gte=0,lte=10000"`
	ProteinAlertPct   float64 `json:"protein_alert_pct" validate:"gte=10,lte=60"`

	PeakSlotTopPct    int `json:"peak_slot_top_pct" validate:"gte=1,lte=30"`
	SlowSlotBottomPct int `json:"slow_slot_bottom_pct" validate:"gte=1,lte=50"`
}

func DefaultSettings() Settings {
	return Settings{
		CommissionRatePct: 20,
		CreditCardFeePct:  3,
		TargetFoodCostPct: 38,
		DailyFixedCost:    800,
		ProteinAlertPct:   35,
		PeakSlotTopPct:    10,
		SlowSlotBottomPct: 20,
	}
}

// SettingsFromEnv starts from DefaultSettings and overrides from CAFE_* env
// vars. Unparsable values keep the default.
//
// Env:
// - CAFE_SALES_WORKBOOK, CAFE_INVENTORY_LEDGER
// - CAFE_COMMISSION_RATE_PCT, CAFE_CC_FEE_PCT
// - CAFE_TARGET_FOOD_COST_PCT, CAFE_DAILY_FIXED_COST, CAFE_PROTEIN_ALERT_PCT
// - CAFE_PEAK_SLOT_TOP_PCT, CAFE_SLOW_SLOT_BOTTOM_PCT
func SettingsFromEnv() Settings {
	s := DefaultSettings()
	if v := strings.TrimSpace(os.Getenv("CAFE_SALES_WORKBOOK")); v != "" {
		s.SalesWorkbookPath = v
	}
	if v := strings.TrimSpace(os.Getenv("CAFE_INVENTORY_LEDGER")); v != "" {
		s.InventoryLedgerPath = v
	}
	envFloat("CAFE_COMMISSION_RATE_PCT", &s.CommissionRatePct)
	envFloat("CAFE_CC_FEE_PCT", &s.CreditCardFeePct)
	envFloat("CAFE_TARGET_FOOD_COST_PCT", &s.TargetFoodCostPct)
	envFloat("CAFE_DAILY_FIXED_COST", &s.DailyFixedCost)
	envFloat("CAFE_PROTEIN_ALERT_PCT", &s.ProteinAlertPct)
	envInt("CAFE_PEAK_SLOT_TOP_PCT", &s.PeakSlotTopPct)
	envInt("CAFE_SLOW_SLOT_BOTTOM_PCT", &s.SlowSlotBottomPct)
	return s
}

func envFloat(key string, dest *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dest = f
		}
	}
}

func envInt(key string, dest *int) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dest = n
		}
	}
}

var validate = validator.New()

func (s Settings) Validate() error {
	return validate.Struct(s)
}
