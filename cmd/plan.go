package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ouestbat/chantier/app"
	"github.com/ouestbat/chantier/config"
	"github.com/ouestbat/chantier/infra/logger"
	"github.com/ouestbat/chantier/infra/metrics"
	"github.com/ouestbat/chantier/internal/feed"
	"github.com/ouestbat/chantier/pkg/export"
)

var (
	itemsPath   string
	workersPath string
	outPath     string
	outFormat   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a time-phased schedule with worker assignments",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&itemsPath, "items", "items.json", "work item feed")
	planCmd.Flags().StringVar(&workersPath, "workers", "workers.json", "worker feed")
	planCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
	planCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	items, err := feed.LoadItems(itemsPath)
	if err != nil {
		return err
	}
	workers, err := feed.LoadWorkers(workersPath)
	if err != nil {
		return err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	logg := logger.New("plan-command")
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Plan(ctx, items, workers)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch outFormat {
	case "json":
		err = export.WriteJSON(out, res.Schedule)
	case "csv":
		err = export.WriteCSV(out, res.Schedule)
	default:
		err = fmt.Errorf("unsupported format: %s", outFormat)
	}
	if err != nil {
		return err
	}

	for _, sf := range res.Report.Shortfalls {
		logg.Warnf("under-staffed: %s (%d/%d)", sf.Name, sf.Assigned, sf.Required)
	}

	if cfg.Metrics.PrometheusEnabled {
		// Keep serving /metrics until interrupted so the run can be scraped.
		logg.Infof("serving metrics on %s", cfg.Metrics.PrometheusPort)
		if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusPort); err != nil {
			return err
		}
	}
	return nil
}
