package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/internal/io"
	"github.com/williampepple1/similar-pages/internal/monitor"
	"github.com/williampepple1/similar-pages/internal/proxy"
	"github.com/williampepple1/similar-pages/internal/scraper"
	"github.com/williampepple1/similar-pages/internal/search"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	seedFile := flag.String("seeds", "", "File containing seed URLs (one per line)")
	logFile := flag.String("log", "", "Search log file (JSON)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	resolveTitles := flag.Bool("titles", false, "Fetch result pages to fill in missing titles")
	enableBrowser := flag.Bool("browser", false, "Use a headless browser for title lookups")
	enableProxy := flag.Bool("proxy", false, "Enable proxy support")
	flag.Parse()

	appConfig, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Override config with command-line flags if provided
	if *seedFile != "" {
		appConfig.IO.SeedFile = *seedFile
	}
	if *logFile != "" {
		appConfig.IO.LogFile = *logFile
	}
	appConfig.Debug = appConfig.Debug || *debug
	appConfig.Titles.Enabled = appConfig.Titles.Enabled || *resolveTitles
	appConfig.Browser.Enabled = appConfig.Browser.Enabled || *enableBrowser
	appConfig.Proxies.Enabled = appConfig.Proxies.Enabled || *enableProxy

	logger, err := utils.NewLogger(appConfig.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	apiKey, err := appConfig.APIKey()
	if err != nil {
		logger.Fatal("Missing search API key", zap.Error(err))
	}

	seeds, err := io.NewSeedReader(&appConfig.IO).GetSeeds()
	if err != nil {
		logger.Fatal("Error reading seed URLs", zap.Error(err))
	}
	if len(seeds) == 0 {
		logger.Fatal("No seed URLs to search")
	}

	proxies := proxy.NewManager(&appConfig.Proxies)
	client, err := search.NewClient(&appConfig.Search, apiKey, proxies, logger)
	if err != nil {
		logger.Fatal("Error creating search client", zap.Error(err))
	}

	store := io.NewLogStore(appConfig.IO.LogFile, logger)
	runner := monitor.NewRunner(appConfig, store, client, os.Stdout, logger)
	if appConfig.Titles.Enabled {
		runner.Fetcher.Titles = scraper.NewTitleResolver(appConfig, proxies)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner.Run(ctx, seeds)
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
