package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/config"
	"github.com/Sriram-PR/clinic-scraper/pkg/crawler"
	"github.com/Sriram-PR/clinic-scraper/pkg/export"
	"github.com/Sriram-PR/clinic-scraper/pkg/extract"
	"github.com/Sriram-PR/clinic-scraper/pkg/fetch"
	"github.com/Sriram-PR/clinic-scraper/pkg/storage"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "crawl":
		runCrawl(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("clinic-scraper %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`clinic-scraper - Clinic directory extractor for archived snapshots

Usage:
  clinic-scraper <command> [options]

Commands:
  crawl       Crawl the clinic directory and export records
  validate    Validate configuration file
  version     Show version info

Run 'clinic-scraper <command> -h' for command-specific help.`)
}

// runCrawl handles the crawl subcommand
func runCrawl(args []string) {
	fs := flag.NewFlagSet("crawl", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to config file (optional; defaults apply without one)")
	startURL := fs.String("start-url", "", "Override crawl start URL (wrapped snapshot URL)")
	maxPages := fs.Int("max-pages", -1, "Override page budget (0 = unlimited)")
	csvPath := fs.String("csv", "", "Override CSV output path")
	jsonPath := fs.String("json", "", "Override JSON output path")
	incompleteCSVPath := fs.String("incomplete-csv", "", "Override incomplete-records CSV output path")
	cacheDir := fs.String("cache-dir", "", "Override snapshot cache directory (empty disables caching)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: clinic-scraper crawl [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  clinic-scraper crawl -csv clinics.csv\n")
		fmt.Fprintf(os.Stderr, "  clinic-scraper crawl -config config.yaml -loglevel debug\n")
		fmt.Fprintf(os.Stderr, "  clinic-scraper crawl -max-pages 50 -json clinics.json\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	log := setupLogger(*logLevel)
	appCfg := loadAndValidateConfig(*configFile, log)

	// CLI flags override config file values
	if *startURL != "" {
		appCfg.StartURL = *startURL
	}
	if *maxPages >= 0 {
		appCfg.MaxPages = *maxPages
	}
	if *csvPath != "" {
		appCfg.Output.CSVPath = *csvPath
	}
	if *jsonPath != "" {
		appCfg.Output.JSONPath = *jsonPath
	}
	if *incompleteCSVPath != "" {
		appCfg.Output.IncompleteCSVPath = *incompleteCSVPath
	}
	if *cacheDir != "" {
		appCfg.CacheDir = *cacheDir
	}
	if appCfg.Output.CSVPath == "" && appCfg.Output.JSONPath == "" {
		appCfg.Output.CSVPath = "clinics.csv"
		log.Infof("No output path configured, defaulting to '%s'", appCfg.Output.CSVPath)
	}

	executeCrawl(appCfg, log)
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: clinic-scraper validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(doValidate(*configFile, os.Stdout, os.Stderr))
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	appCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Configuration valid.")
	return 0
}

// setupLogger creates a configured logrus.Logger with the given log level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}

	return log
}

// loadAndValidateConfig loads the config file (if given), validates it, and
// logs warnings. An empty path yields a default configuration.
func loadAndValidateConfig(configFile string, log *logrus.Logger) *config.AppConfig {
	var appCfg *config.AppConfig
	if configFile == "" {
		log.Info("No config file given, using defaults")
		appCfg = &config.AppConfig{}
	} else {
		log.Infof("Loading configuration from %s", configFile)
		loaded, err := config.Load(configFile)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		appCfg = loaded
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	return appCfg
}

// executeCrawl wires the components, runs the crawl, and writes the exports.
func executeCrawl(appCfg *config.AppConfig, log *logrus.Logger) {
	log.Infof("Start URL: %s", appCfg.StartURL)
	log.Infof("Site prefix: %s, max pages: %d (0 = unlimited)", appCfg.SitePrefix, appCfg.MaxPages)

	// --- Global context and signal handling ---
	crawlCtx, cancelCrawl := context.WithCancel(context.Background())
	defer cancelCrawl()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelCrawl()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()

	// --- Initialize components ---
	log.Info("Initializing components...")
	logEntry := log.WithField("component", "crawl")

	var cache fetch.SnapshotCache
	if appCfg.CacheDir != "" {
		store, err := storage.NewSnapshotStore(appCfg.CacheDir, logEntry)
		if err != nil {
			log.Fatalf("Failed to initialize snapshot cache: %v", err)
		}
		defer func() {
			store.RunGC()
			if closeErr := store.Close(); closeErr != nil {
				log.Errorf("Error closing snapshot cache: %v", closeErr)
			}
		}()
		cache = store
	} else {
		log.Info("Snapshot cache disabled (no cache_dir configured)")
	}

	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg, cache, log)
	extractor := extract.NewExtractor(appCfg.Extraction, log)

	crawlerInstance, err := crawler.New(appCfg, fetcher, extractor, log)
	if err != nil {
		log.Fatalf("Failed to initialize crawler: %v", err)
	}

	// --- Run the crawl ---
	result, err := crawlerInstance.Run(crawlCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Crawl cancelled gracefully.")
			os.Exit(0)
		}
		log.Errorf("Crawl failed: %v", err)
		os.Exit(1)
	}

	// --- Exports ---
	if appCfg.Output.CSVPath != "" {
		if _, err := export.WriteCSV(result.Records, appCfg.Output.CSVPath, log); err != nil {
			log.Fatalf("CSV export failed: %v", err)
		}
	}
	if appCfg.Output.JSONPath != "" {
		if err := export.WriteJSON(result.Records, appCfg.Output.JSONPath, log); err != nil {
			log.Fatalf("JSON export failed: %v", err)
		}
	}
	if appCfg.Output.IncompleteCSVPath != "" {
		if _, err := export.WriteIncompleteCSV(result.Records, appCfg.Output.IncompleteCSVPath, log); err != nil {
			log.Fatalf("Incomplete-records export failed: %v", err)
		}
	}

	printSummary(result, log)
	os.Exit(0)
}

// printSummary logs the end-of-run completeness report.
func printSummary(result *crawler.CrawlResult, log *logrus.Logger) {
	r := result.Report
	log.Infof("Run %s: visited %d pages (%d fetch failures)",
		result.RunID, result.PagesVisited, len(result.FetchFailures))
	log.Infof("Extracted %d clinic records: %d complete, %d incomplete",
		r.TotalRecords, r.CompleteRecords(), r.IncompleteRecords)
	if r.IncompleteRecords > 0 {
		log.Infof("Missing fields: name=%d address=%d email=%d phone=%d services=%d",
			r.MissingName, r.MissingAddress, r.MissingEmail, r.MissingPhone, r.MissingServices)
	}
	for url, fetchErr := range result.FetchFailures {
		log.Warnf("Fetch failure: %s: %v", url, fetchErr)
	}
}
