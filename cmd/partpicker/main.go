package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maltedev/partpicker-scraper/internal/browser"
	"github.com/maltedev/partpicker-scraper/internal/config"
	"github.com/maltedev/partpicker-scraper/internal/logger"
	"github.com/maltedev/partpicker-scraper/internal/scraper"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "partpicker",
	Short: "PCPartPicker scraping CLI and API server",
	Long:  "Extracts products, build lists, search results and reviews from PCPartPicker pages.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("region", "", "Two-letter region code (default us)")
	rootCmd.PersistentFlags().Int("max-retries", 0, "Challenge refetch budget")
	rootCmd.PersistentFlags().Duration("retry-delay", 0, "Delay between challenge refetches")
	rootCmd.PersistentFlags().Bool("skip-render", false, "Accept the final fetch without re-rendering challenge pages")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "Fetch pacing in requests per second (0 disables)")
	rootCmd.PersistentFlags().Bool("headless", true, "Run the browser headless")
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flags := rootCmd.PersistentFlags()
	if v, _ := flags.GetString("region"); v != "" {
		cfg.Scraper.Region = v
	}
	if flags.Changed("max-retries") {
		cfg.Scraper.MaxRetries, _ = flags.GetInt("max-retries")
	}
	if v, _ := flags.GetDuration("retry-delay"); v > 0 {
		cfg.Scraper.RetryDelay = v
	}
	if v, _ := flags.GetBool("skip-render"); v {
		cfg.Scraper.SkipRenderOnChallenge = true
	}
	if v, _ := flags.GetFloat64("rate-limit"); v > 0 {
		cfg.Scraper.RateLimit = v
	}
	if v, _ := flags.GetBool("headless"); !v {
		cfg.Browser.Headless = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// newClient starts a browser and wraps it in a scraping client. The
// returned close func tears the browser down.
func newClient() (*scraper.Client, func(), error) {
	b, err := browser.New(&browser.Options{
		Headless:       cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
		ProxyServer:    cfg.Browser.ProxyServer,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	client, err := scraper.NewClient(b, scraper.Options{
		Region:                cfg.Scraper.Region,
		MaxRetries:            scraper.Int(cfg.Scraper.MaxRetries),
		RetryDelay:            cfg.Scraper.RetryDelay,
		SkipRenderOnChallenge: cfg.Scraper.SkipRenderOnChallenge,
		RateLimit:             cfg.Scraper.RateLimit,
		ConcurrentLimit:       cfg.Scraper.ConcurrentLimit,
		Logger:                log,
	})
	if err != nil {
		b.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := b.Close(); err != nil {
			log.Error("failed to close browser", "error", err)
		}
	}
	return client, closeFn, nil
}
