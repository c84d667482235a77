// Package cli wires the application together behind a cobra command.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/laurab04-design/fossedata-render/internal/config"
	"github.com/laurab04-design/fossedata-render/internal/output"
	"github.com/laurab04-design/fossedata-render/internal/profile"
	"github.com/laurab04-design/fossedata-render/internal/runner"
	"github.com/laurab04-design/fossedata-render/internal/schedule"
	"github.com/laurab04-design/fossedata-render/internal/scraper"
	"github.com/laurab04-design/fossedata-render/internal/storage"
	"github.com/laurab04-design/fossedata-render/internal/travel"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir      string
	flagOutDir       string
	flagSchedulesDir string
	flagFetch        bool
	flagOffline      bool
)

// NewRootCmd creates the root command.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fossedata",
		Short: "Track Golden Retriever show entries, costs and clashes",
		Long: `Processes downloaded dog-show schedules: determines class eligibility,
entry and travel costs, Junior Warrant points, same-day clashes and
overnight multi-show chains, and writes CSV/JSON results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cfg)
		},
	}

	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for snapshots (default from config)")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Output directory for results (default from config)")
	cmd.Flags().StringVar(&flagSchedulesDir, "schedules-dir", "", "Directory of extracted schedule text files")
	cmd.Flags().BoolVar(&flagFetch, "fetch", false, "Refresh the show-link list from fossedata first")
	cmd.Flags().BoolVar(&flagOffline, "offline", false, "Skip all network lookups (travel, fuel price, fetch)")

	return cmd
}

// runProcess is the main command logic.
func runProcess(cfg *config.Config) error {
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagOutDir != "" {
		cfg.OutputDir = flagOutDir
	}
	if flagSchedulesDir != "" {
		cfg.SchedulesDir = flagSchedulesDir
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	if flagFetch && !flagOffline {
		if err := refreshShowLinks(cfg, store); err != nil {
			// Stale links are still usable; fetch failure is not fatal.
			zap.L().Warn("show link refresh failed", zap.Error(err))
		}
	}

	prof, err := profile.New(cfg.DogName, cfg.DogDOB, cfg.HandlerHasCC,
		cfg.DogHasWorkingQual, cfg.DogHasGoodCitizen,
		cfg.ClassExclusions, cfg.AlwaysInclude, cfg.CCTriggerWords, cfg.RCCTriggerWords)
	if err != nil {
		return err
	}

	wins, err := profile.LoadWinLog(cfg.WinLogFile)
	if err != nil {
		return fmt.Errorf("loading win log: %w", err)
	}

	processed, err := store.LoadProcessed()
	if err != nil {
		return fmt.Errorf("loading processed shows: %w", err)
	}

	travelCache, err := store.LoadTravelCache()
	if err != nil {
		return fmt.Errorf("loading travel cache: %w", err)
	}

	var routes travel.Lookup
	dieselPrice := travel.DefaultDieselPrice
	var client *travel.Client
	if !flagOffline && cfg.MapsAPIKey != "" {
		client = travel.NewClientWithCache(cfg.MapsAPIKey, travelCache)
		routes = client
		dieselPrice = travel.NewFuelClient().DieselPrice()
	}

	sources, err := loadSources(cfg.SchedulesDir)
	if err != nil {
		return fmt.Errorf("loading schedules: %w", err)
	}
	zap.L().Info("loaded schedules",
		zap.Int("count", len(sources)), zap.String("dir", cfg.SchedulesDir))

	run := runner.New(cfg, prof, wins,
		schedule.NewRegexExtractor(cfg.Breed), routes, dieselPrice)

	results, skipped := run.ProcessBatch(sources, processed)
	report := run.Plan(results)
	for _, s := range skipped {
		report.Skipped = append(report.Skipped, s.URL)
	}

	if err := output.SaveAll(cfg.OutputDir, &output.Run{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Report:      report,
	}); err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}

	if err := store.SaveProcessed(processed); err != nil {
		return fmt.Errorf("saving processed shows: %w", err)
	}
	if client != nil {
		if err := store.SaveTravelCache(client.GetCache()); err != nil {
			return fmt.Errorf("saving travel cache: %w", err)
		}
	}

	zap.L().Info("run complete",
		zap.Int("results", len(results)),
		zap.Int("clashes", len(report.Clashes)),
		zap.Int("chains", len(report.Chains)),
		zap.Int("skipped", len(report.Skipped)))

	return nil
}

// refreshShowLinks scrapes the fossedata listing and stores the show URLs
// alongside the snapshots, reporting how many were not in the previous list.
func refreshShowLinks(cfg *config.Config, store *storage.Storage) error {
	known, err := store.LoadShowLinks()
	if err != nil {
		return err
	}

	links, err := scraper.New().FetchShowLinks()
	if err != nil {
		return err
	}
	zap.L().Info("fetched show links",
		zap.Int("count", len(links)),
		zap.Int("new", countNewLinks(known, links)))
	return store.SaveShowLinks(links)
}

// countNewLinks reports how many links are absent from the known list.
func countNewLinks(known, links []string) int {
	seen := make(map[string]bool, len(known))
	for _, l := range known {
		seen[l] = true
	}
	n := 0
	for _, l := range links {
		if !seen[l] {
			n++
		}
	}
	return n
}

// loadSources reads every .txt schedule in the directory. The file name is
// the show page slug, so the show URL can be reconstructed from it.
func loadSources(dir string) ([]runner.Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schedules directory %s does not exist", dir)
		}
		return nil, err
	}

	sources := make([]runner.Source, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			zap.L().Warn("unreadable schedule file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".txt")
		sources = append(sources, runner.Source{
			URL:  scraper.BaseURL + "/" + slug + ".aspx",
			Text: string(data),
		})
	}
	return sources, nil
}

// Execute runs the CLI.
func Execute(cfg *config.Config) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
