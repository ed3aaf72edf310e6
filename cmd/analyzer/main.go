// Package main provides the entry point for the handicapping analyzer CLI.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/analyzer"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/health"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/metrics"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/providers"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/ratings"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

// slateFile is the pre-fetched snapshot bundle the evaluate command reads.
// Upstream collectors write this shape; the core never fetches anything
// itself.
type slateFile struct {
	Ratings []struct {
		Team   models.Team `json:"team"`
		Rating float64     `json:"rating"`
	} `json:"ratings"`
	Games     []models.Game            `json:"games"`
	Lines     []models.MarketLine      `json:"lines"`
	Stats     []models.SeasonStats     `json:"stats"`
	Forecasts []models.WeatherForecast `json:"forecasts"`
	Injuries  []models.InjuryReport    `json:"injuries"`
	Contexts  []models.TeamContext     `json:"contexts"`
}

// performanceFile is the weekly rating-update input.
type performanceFile struct {
	Week    int `json:"week"`
	Updates []struct {
		Team        models.Team `json:"team"`
		Performance float64     `json:"performance"`
	} `json:"updates"`
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	evaluateCmd.Flags().String("slate", "", "Path to slate snapshot file (JSON)")
	evaluateCmd.Flags().Float64("bankroll", 10000, "Bankroll for stake sizing")
	_ = evaluateCmd.MarkFlagRequired("slate")

	ratingsCmd.Flags().String("file", "", "Path to weekly performance file (JSON)")
	_ = ratingsCmd.MarkFlagRequired("file")

	serveCmd.Flags().String("slate", "", "Path to slate snapshot file (JSON) to preload")
	serveCmd.Flags().Float64("bankroll", 10000, "Bankroll for stake sizing")

	rootCmd.AddCommand(evaluateCmd, ratingsCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Point-spread prediction and edge detection",
	Long: `Computes predicted point-spreads from power ratings and situational,
weather, emotional and injury adjustments, detects edges against quoted
market lines, and sizes stakes with fractional Kelly under exposure caps.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a slate of games against market lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		slatePath, _ := cmd.Flags().GetString("slate")
		bankroll, _ := cmd.Flags().GetFloat64("bankroll")

		slate, err := readSlate(slatePath)
		if err != nil {
			return err
		}

		decisions := buildAnalyzer(slate).EvaluateSlate(slate.Games, decimal.NewFromFloat(bankroll))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve slate evaluation over HTTP with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		bankroll, _ := cmd.Flags().GetFloat64("bankroll")

		metrics.InitRegistry()

		metricsPath := cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		port := ""
		if cfg.Metrics.Port != 0 {
			port = strconv.Itoa(cfg.Metrics.Port)
		}

		srv := health.NewServer(health.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Commit:         GitCommit,
			Port:           port,
			MetricsPath:    metricsPath,
			MetricsHandler: metrics.Handler(),
			Routes: map[string]http.Handler{
				"/evaluate": evaluateHandler(decimal.NewFromFloat(bankroll)),
			},
			Logger: appLog,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			return err
		}
		srv.SetReady(true)

		<-ctx.Done()
		return srv.Shutdown()
	},
}

// evaluateHandler evaluates a posted slate snapshot. Each request carries its
// own ratings and provider state, so evaluations stay independent.
func evaluateHandler(defaultBankroll decimal.Decimal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		slate := &slateFile{}
		if err := json.NewDecoder(r.Body).Decode(slate); err != nil {
			http.Error(w, fmt.Sprintf("invalid slate: %v", err), http.StatusBadRequest)
			return
		}

		bankroll := defaultBankroll
		if v := r.URL.Query().Get("bankroll"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				http.Error(w, "invalid bankroll", http.StatusBadRequest)
				return
			}
			bankroll = decimal.NewFromFloat(f)
		}

		decisions := buildAnalyzer(slate).EvaluateSlate(slate.Games, bankroll)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(decisions)
	})
}

// buildAnalyzer seeds a fresh rating store and snapshot store from one slate
// bundle and wires the pipeline around them.
func buildAnalyzer(slate *slateFile) *analyzer.Analyzer {
	store := ratings.NewStore(cfg.Ratings, cfg.Leagues, appLog)
	for _, r := range slate.Ratings {
		store.Seed(r.Team, r.Rating)
	}

	snapshots := providers.NewSnapshotStore(cfg.Snapshots)
	for _, l := range slate.Lines {
		snapshots.PutMarketLine(l)
	}
	for _, s := range slate.Stats {
		snapshots.PutSeasonStats(s)
	}
	for _, f := range slate.Forecasts {
		snapshots.PutForecast(f)
	}
	for _, r := range slate.Injuries {
		snapshots.PutInjuryReport(r)
	}
	for _, c := range slate.Contexts {
		snapshots.PutTeamContext(c)
	}

	return analyzer.New(cfg, store, snapshots.Bundle(), appLog)
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Apply weekly power-rating updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read performance file: %w", err)
		}
		var pf performanceFile
		if err := json.Unmarshal(data, &pf); err != nil {
			return fmt.Errorf("failed to parse performance file: %w", err)
		}

		store := ratings.NewStore(cfg.Ratings, cfg.Leagues, appLog)
		for _, u := range pf.Updates {
			rating, applied := store.Update(u.Team, pf.Week, u.Performance)
			appLog.WithFields(logrus.Fields{
				"team_id": u.Team.ID,
				"week":    pf.Week,
				"rating":  rating,
				"applied": applied,
			}).Info("Rating update processed")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.Snapshot())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("analyzer %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func readSlate(path string) (*slateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slate file: %w", err)
	}
	slate := &slateFile{}
	if err := json.Unmarshal(data, slate); err != nil {
		return nil, fmt.Errorf("failed to parse slate file: %w", err)
	}
	return slate, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
