package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/models/reports"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/joho/godotenv"
)

func main() {
	salesPath := flag.String("sales", "", "Sales workbook path (overrides CAFE_SALES_WORKBOOK)")
	invPath := flag.String("inventory", "", "Inventory ledger path (overrides CAFE_INVENTORY_LEDGER)")
	outPath := flag.String("out", "cafe_metrics_export.xlsx", "Export workbook path")
	jsonPath := flag.String("json", "", "Optional: also dump the snapshot as JSON to this path")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logger := config.GetLogger()

	settings := config.SettingsFromEnv()
	if strings.TrimSpace(*salesPath) != "" {
		settings.SalesWorkbookPath = strings.TrimSpace(*salesPath)
	}
	if strings.TrimSpace(*invPath) != "" {
		settings.InventoryLedgerPath = strings.TrimSpace(*invPath)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(1)
	}

	snap, err := reports.LoadDashboard(settings, models.NewLoaderCache())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	for _, a := range snap.Alerts() {
		if a.Severity == reports.SeverityOK {
			continue
		}
		logger.WithFields(map[string]any{
			"runId":     snap.RunId(),
			"kind":      string(a.Kind),
			"severity":  string(a.Severity),
			"subject":   a.Subject,
			"value":     a.Value.String(),
			"threshold": a.Threshold.String(),
		}).Warn("alert")
	}

	if err := reports.ExportWorkbook(snap, *outPath); err != nil {
		config.LogError(logger, "main", "main", "export workbook", *outPath, err)
		os.Exit(1)
	}

	if strings.TrimSpace(*jsonPath) != "" {
		dump := map[string]any{
			"run_id":          snap.RunId(),
			"days":            snap.Days(),
			"weekly":          snap.Weekly(),
			"kpis":            snap.KPIs(),
			"protein":         snap.Protein(),
			"stock_statuses":  snap.StockStatuses(),
			"vendors":         snap.Vendors(),
			"categories":      snap.Categories(),
			"consistency":     snap.Consistencies(),
			"perishables":     snap.Perishables(10),
			"alerts":          snap.Alerts(),
			"recommendations": snap.Recommendations(),
		}
		if err := utils.WriteJSONFile(strings.TrimSpace(*jsonPath), dump); err != nil {
			config.LogError(logger, "main", "main", "write json snapshot", *jsonPath, err)
			os.Exit(1)
		}
	}

	fmt.Printf("exported %d weeks, %d alerts to %s\n", len(snap.Weekly()), len(snap.Alerts()), *outPath)
}
