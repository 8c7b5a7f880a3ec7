package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `WealthLens – SIP projection with hidden costs

Projects a recurring monthly investment (SIP) using a remote calculation
service, then shows what expense ratio, exit load and inflation quietly take
out of it. Two cost strategies can be compared side by side.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                        Interactive console mode
  %s -compare               Console mode, go straight to a strategy comparison
  %s -pdf reports           Console mode, save PDF and HTML reports into ./reports
  %s -web                   Web server mode (opens external browser)
  %s -web -addr :8080       Web server on a specific port
  %s -ui                    Embedded browser window

Configuration:
  Edit config.yaml (see default-config.yaml). Environment overrides:
    WEALTHLENS_API_BASE   calculation service base URL
    WEALTHLENS_LOG_LEVEL  debug, info, warn or error
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	envFile := flag.String("env", ".env", "Path to an optional .env file")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "localhost:0", "Web server address (use :0 for auto port)")
	compareOnly := flag.Bool("compare", false, "Console mode: run a strategy comparison only")
	pdfDir := flag.String("pdf", "", "Console mode: directory to save PDF and HTML reports into")
	legacyAnimation := flag.Bool("legacy-animation", false, "Let overlapping animations race instead of superseding")
	flag.Parse()

	if err := LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	config, err := LoadConfigOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *legacyAnimation {
		config.Animation.LegacyOverlap = true
	}

	if *uiMode {
		if err := runEmbeddedUI(config); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *webMode {
		logger := NewLogger(config.LogLevel, true, os.Stdout)
		app := NewApp(config, nil, logger)
		defer app.Close()
		if err := NewWebServer(app, *webAddr).Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runConsoleMode(ctx, config, os.Stdin, os.Stdout, *compareOnly, *pdfDir)
}

// runConsoleMode prompts for a plan, shows the animated results and
// optionally compares strategies and saves reports
func runConsoleMode(ctx context.Context, config *Config, in io.Reader, out io.Writer, compareOnly bool, pdfDir string) {
	logger := NewLogger(config.LogLevel, false, os.Stderr)
	app := NewApp(config, TerminalNotifier{Out: out}, logger)
	defer app.Close()

	PrintHeader(out, config)
	prompter := NewPlanPrompter(in, out)
	plan := config.PlanParameters()
	strategyA, strategyB := config.Strategies()
	frameInterval := config.Animation.FrameInterval()

	for ctx.Err() == nil {
		plan = prompter.PromptPlan(plan)

		if !compareOnly {
			if _, err := app.Calculator.Calculate(ctx, plan); err == nil {
				WatchAnimation(ctx, app, out, frameInterval)
				snap := app.Snapshot()
				PrintResults(out, snap, config.Display.CurrencyLabel)
				if chart, ok := app.Chart.Current(); ok {
					PrintChart(out, chart.Dataset(), 40)
				}
				saveReport(out, pdfDir, SIPReportFilename, func() ([]byte, error) {
					return GenerateSIPReport(snap, plan, config.Display.CurrencyLabel)
				})
			}
		}

		if compareOnly || prompter.promptYesNo("\nCompare two cost strategies?", false) {
			strategyA = prompter.PromptStrategy("Strategy A", strategyA)
			strategyB = prompter.PromptStrategy("Strategy B", strategyB)
			if _, err := app.Comparator.Compare(ctx, plan, strategyA, strategyB); err == nil {
				snap := app.Snapshot()
				PrintComparison(out, snap, config.Display.CurrencyLabel)
				saveReport(out, pdfDir, ComparisonReportFilename, func() ([]byte, error) {
					return GenerateComparisonReport(snap, *snap.Comparison, config.Display.CurrencyLabel)
				})
			}
		}

		saveReport(out, pdfDir, HTMLReportFilename, func() ([]byte, error) {
			var dataset *ChartDataset
			if chart, ok := app.Chart.Current(); ok {
				ds := chart.Dataset()
				dataset = &ds
			}
			return GenerateHTMLReport(app.Snapshot(), dataset, config.Display.CurrencyLabel)
		})

		if !prompter.promptYesNo("\nRun another projection?", false) {
			return
		}
		fmt.Fprintln(out)
	}
}

// saveReport writes a generated report into dir; an empty dir skips it
func saveReport(out io.Writer, dir, filename string, generate func() ([]byte, error)) {
	if dir == "" {
		return
	}
	data, err := generate()
	if err != nil {
		fmt.Fprintf(out, "  ✗ Error generating %s: %v\n", filename, err)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(out, "  ✗ Error creating %s: %v\n", dir, err)
		return
	}

	stamp := time.Now().Format("2006-01-02_150405")
	path := filepath.Join(dir, stamp+"_"+filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(out, "  ✗ Error saving %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(out, "  ✓ Saved %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
}

// openBrowser opens a URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
