package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/intelligence/intelobs"
	"equity-intel/internal/interfaces"
	"equity-intel/internal/logger"
	"equity-intel/internal/report"
	"equity-intel/internal/sentiment"
	"equity-intel/internal/store"
	"equity-intel/internal/ta"
)

type options struct {
	configPath string
	ticker     string
	prediction string
	confidence float64
	ma20       float64
	ma50       float64
	rsi        float64
	pricesPath string
	format     string
	outputFile string
	outputDir  string
	schedule   string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&o.ticker, "ticker", "", "stock ticker to analyze (required)")
	flag.StringVar(&o.prediction, "prediction", "UP", "model prediction, e.g. UP or DOWN")
	flag.Float64Var(&o.confidence, "confidence", 50, "model confidence percentage (0-100)")
	flag.Float64Var(&o.ma20, "ma20", 0, "20-day moving average")
	flag.Float64Var(&o.ma50, "ma50", 0, "50-day moving average")
	flag.Float64Var(&o.rsi, "rsi", 0, "14-day RSI")
	flag.StringVar(&o.pricesPath, "prices", "", "CSV of daily closes (date,close) for indicators and realized volatility")
	flag.StringVar(&o.format, "format", "text", "output format: text, json, or markdown")
	flag.StringVar(&o.outputFile, "output", "", "save report to file (optional)")
	flag.StringVar(&o.outputDir, "output-dir", "reports", "directory for auto-saved reports")
	flag.StringVar(&o.schedule, "schedule", "", "cron expression to rerun on, e.g. '@every 15m' (optional)")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	if opts.ticker == "" {
		fmt.Println("Error: -ticker is required")
		flag.Usage()
		os.Exit(1)
	}
	if !intelligence.ValidConfidence(opts.confidence) {
		fmt.Println("Error: -confidence must be between 0 and 100")
		os.Exit(1)
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Shutdown(context.Background())

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	indicators, closes, err := buildInputs(opts)
	if err != nil {
		fmt.Printf("Error reading prices: %v\n", err)
		os.Exit(1)
	}

	orch, err := intelligence.NewFromConfig(cfg)
	if err != nil {
		fmt.Printf("Error creating pipeline: %v\n", err)
		os.Exit(1)
	}
	runner := intelobs.Wrap(orch)

	req := intelligence.Request{
		Ticker:     opts.ticker,
		Prediction: opts.prediction,
		Indicators: indicators,
		Confidence: opts.confidence,
		Closes:     closes,
	}
	reporter := report.NewReporter(opts.outputDir)

	if opts.schedule == "" {
		if err := runOnce(context.Background(), runner, reporter, req, format, opts.outputFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runScheduled(runner, reporter, req, format, opts.schedule); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig falls back to defaults when the config file does not exist
func loadConfig(path string) (*store.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn(context.Background(), "Config file not found, using defaults", "path", path)
		return store.Default(), nil
	}
	return store.LoadConfig(path)
}

// buildInputs derives indicators from -prices when given and returns the
// closes for volatility analysis; explicit flags override derived values.
func buildInputs(opts options) (sentiment.Indicators, []float64, error) {
	ind := sentiment.Indicators{}
	var closes []float64
	if opts.pricesPath != "" {
		var err error
		closes, err = ta.LoadCloses(opts.pricesPath)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range ta.Indicators(closes) {
			ind[k] = v
		}
	}
	if opts.ma20 != 0 {
		ind[sentiment.KeyMA20] = opts.ma20
	}
	if opts.ma50 != 0 {
		ind[sentiment.KeyMA50] = opts.ma50
	}
	if opts.rsi != 0 {
		ind[sentiment.KeyRSI] = opts.rsi
	}
	return ind, closes, nil
}

func runOnce(ctx context.Context, runner interfaces.IntelligenceRunner, reporter *report.Reporter, req intelligence.Request, format report.Format, outputFile string) error {
	rep := runner.RunIntelligence(ctx, req)

	content, err := reporter.Generate(rep, format)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	fmt.Println(content)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Printf("\n✅ Report saved to: %s\n", outputFile)
		return nil
	}

	savedPath, err := reporter.SaveReport(rep, format)
	if err != nil {
		fmt.Printf("Warning: Could not auto-save report: %v\n", err)
	} else {
		fmt.Printf("\n✅ Report auto-saved to: %s\n", savedPath)
	}
	return nil
}

// runScheduled reruns the report on schedule until SIGINT/SIGTERM
func runScheduled(runner interfaces.IntelligenceRunner, reporter *report.Reporter, req intelligence.Request, format report.Format, schedule string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		rep := runner.RunIntelligence(ctx, req)
		path, err := reporter.SaveReport(rep, format)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to save scheduled report", err, "ticker", req.Ticker)
			return
		}
		logger.Info(ctx, "Scheduled report saved", "ticker", req.Ticker, "path", path)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	c.Start()
	logger.Info(ctx, "Scheduled intelligence started", "ticker", req.Ticker, "schedule", schedule)

	<-sigc
	cancel()
	<-c.Stop().Done()
	logger.Info(context.Background(), "Scheduled intelligence stopped")
	return nil
}
