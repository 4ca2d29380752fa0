// Aktienduell — comparison images for stock pairs.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/fbruhn/aktienduell/api"
	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/config"
	"github.com/fbruhn/aktienduell/internal/fetch"
	"github.com/fbruhn/aktienduell/internal/janitor"
	"github.com/fbruhn/aktienduell/internal/metric"
	"github.com/fbruhn/aktienduell/internal/render"
	"github.com/fbruhn/aktienduell/internal/table"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aktienduell",
	Short: "Aktienduell — comparison images for stock pairs",
	Long: `Aktienduell renders fixed-size social images that compare two
stocks side by side: metric cards, price and target pills, analyst
recommendation bars and a winner badge, fed from a CSV stock table
that an update pipeline keeps fresh against Yahoo Finance.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statusCmd)
}

// setupLogging configures the process-wide logger.
func setupLogging(lc config.LoggingConfig) {
	log.DefaultLogger.Level = log.ParseLevel(lc.Level)
	if lc.Format != "json" {
		log.DefaultLogger.Writer = &log.ConsoleWriter{ColorOutput: true}
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aktienduell %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("server setup failed: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go janitor.New(cfg.Render.OutputDir, cfg.Janitor.MaxAge, cfg.Janitor.Interval).Run(ctx)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.Info().Str("addr", addr).Str("table", cfg.Data.TablePath).Msg("starting API server")
		return srv.ListenAndServe(addr)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render [ticker_a] [ticker_b]",
	Short: "Render one comparison image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, _ := cmd.Flags().GetStringSlice("metrics")

		snap, err := table.NewRepository(cfg.Data.TablePath).Snapshot()
		if err != nil {
			return fmt.Errorf("load table: %w", err)
		}
		a, ok := snap.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown ticker: %s", strings.ToUpper(args[0]))
		}
		b, ok := snap.Lookup(args[1])
		if !ok {
			return fmt.Errorf("unknown ticker: %s", strings.ToUpper(args[1]))
		}

		fonts, err := render.LoadFonts(cfg.Assets.FontRegular, cfg.Assets.FontBold)
		if err != nil {
			return fmt.Errorf("font setup failed: %w", err)
		}
		reg := catalog.Default()
		res := metric.NewResolver(reg)
		comp := render.NewCompositor(
			fonts,
			render.NewAssets(cfg.Assets.Dir),
			metric.NewFormatter(reg, res, metric.German),
			render.NewScorer(reg, res),
			cfg.Render.OutputDir,
			time.Now,
		)

		keys := metric.NewSelector(reg, res).Select(a, b, metrics, a.Sector())
		file, err := comp.Render(a, b, keys)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Println(filepath.Join(cfg.Render.OutputDir, file))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringSlice("metrics", nil, "metric columns to compare (default: sector defaults)")
}

// --- Update Command (Fetch Pipeline) ---

var updateCmd = &cobra.Command{
	Use:   "update [tickers...]",
	Short: "Refresh the stock table from Yahoo Finance",
	Long: `Fetch fresh quote data for the given tickers (default: every row
of the table) and merge it back into the CSV. The file is only
replaced when enough tickers updated successfully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := table.NewRepository(cfg.Data.TablePath)
		snap, err := repo.Snapshot()
		if err != nil {
			return fmt.Errorf("load table: %w", err)
		}

		tickers := args
		if len(tickers) == 0 {
			tickers = tableTickers(snap)
		}
		for i := range tickers {
			tickers[i] = strings.ToUpper(strings.TrimSpace(tickers[i]))
		}

		retry := fetch.DefaultRetryPolicy
		if cfg.Fetch.MaxAttempts > 0 {
			retry.MaxAttempts = cfg.Fetch.MaxAttempts
		}
		if cfg.Fetch.BackoffBase > 0 {
			retry.BaseDelay = cfg.Fetch.BackoffBase
		}

		src := fetch.NewYahoo("")
		p := fetch.NewPipeline(src, fetch.Options{
			BatchSize:        cfg.Fetch.BatchSize,
			Workers:          cfg.Fetch.Workers,
			Cooldown:         cfg.Fetch.Cooldown,
			Retry:            retry,
			FailureThreshold: cfg.Fetch.FailureThreshold,
			MinUpdatedQuote:  cfg.Fetch.MinUpdatedQuote,
		})

		res, err := p.Run(cmd.Context(), tickers)
		if err != nil {
			return fmt.Errorf("update run failed: %w", err)
		}

		if len(res.Failed) > 0 {
			writeFailedLog(cfg.Data.TablePath, res.Failed)
		}

		fmt.Printf("Updated %d/%d tickers, %d failed\n", len(res.Updated), len(tickers), len(res.Failed))
		if !res.Commit {
			fmt.Println("Update quota not met — table left unchanged")
			return nil
		}

		if err := repo.SaveMerged(snap, res.Updated, time.Now(), src.Name()); err != nil {
			return fmt.Errorf("save table: %w", err)
		}
		fmt.Printf("Table saved to %s\n", cfg.Data.TablePath)
		return nil
	},
}

// tableTickers collects the fetchable ticker of every row, preferring
// the resolved upstream ticker over the raw symbol.
func tableTickers(snap *table.Snapshot) []string {
	out := make([]string, 0, snap.Len())
	for _, e := range snap.Entities() {
		t := e.Symbol()
		if v, ok := e.Field("valid_yahoo_ticker"); ok {
			t = v
		}
		out = append(out, t)
	}
	return out
}

// writeFailedLog drops the failed ticker list next to the table file.
func writeFailedLog(tablePath string, failed []string) {
	name := fmt.Sprintf("failed_tickers_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(filepath.Dir(tablePath), name)
	if err := os.WriteFile(path, []byte(strings.Join(failed, "\n")+"\n"), 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed-ticker log not written")
		return
	}
	log.Info().Int("count", len(failed)).Str("path", path).Msg("failed tickers logged")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Aktienduell — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Table:       %s\n", cfg.Data.TablePath)
		fmt.Printf("    Assets:      %s\n", cfg.Assets.Dir)
		fmt.Printf("    Output:      %s\n", cfg.Render.OutputDir)
		fmt.Printf("    API Server:  %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		fmt.Println("  Table:")
		snap, err := table.NewRepository(cfg.Data.TablePath).Snapshot()
		if err != nil {
			fmt.Printf("    ❌ not loadable: %v\n", err)
		} else {
			fmt.Printf("    ✅ %d entities, %d columns\n", snap.Len(), len(snap.Columns()))
			fmt.Printf("    as of %s\n", snap.ModTime().Format("2006-01-02 15:04:05"))
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
