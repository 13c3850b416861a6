// Soccer Hub — football news aggregation and AI match predictions backend.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/soccerhub/soccerhub/api"
	"github.com/soccerhub/soccerhub/internal/config"
	"github.com/soccerhub/soccerhub/internal/feeds"
	"github.com/soccerhub/soccerhub/internal/llm"
	"github.com/soccerhub/soccerhub/internal/predict"
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
	Use:   "soccerhub",
	Short: "Soccer Hub — football news aggregation and AI match predictions",
	Long: `Soccer Hub backend
Aggregates football news from dozens of RSS feeds into one timeline,
tracks fixtures kicking off in the next 24 hours, and generates AI
match predictions through OpenRouter.`,
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
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(predictCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Soccer Hub %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		api.Version = version
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("⚽ Soccer Hub API listening on %s (%d news sources)\n", addr, len(cfg.Sources.News))
		return srv.ListenAndServe(addr)
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch and print the aggregated news timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		fetcher := feeds.NewFetcher(time.Duration(cfg.Fetch.TimeoutSec) * time.Second)
		results := fetcher.FetchAll(cmd.Context(), cfg.Sources.News)
		items := feeds.Aggregate(results)

		failed := 0
		for _, res := range results {
			if res.Failed() {
				failed++
			}
		}
		fmt.Printf("📰 %d articles from %d sources (%d sources unavailable)\n\n",
			len(items), len(results)-failed, failed)

		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		for _, item := range items {
			fmt.Printf("%s  [%s]\n    %s\n", item.ISODate.Format("2006-01-02 15:04"), item.Source, item.Title)
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 25, "maximum number of articles to print (0 = all)")
}

// --- Fixtures Command ---

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List fixtures kicking off in the next 24 hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := feeds.NewFetcher(time.Duration(cfg.Fetch.TimeoutSec) * time.Second)
		result := fetcher.FetchSource(cmd.Context(), cfg.Sources.Fixtures)
		fixtures := feeds.SelectUpcoming(result.Items, time.Now())

		if len(fixtures) == 0 {
			fmt.Println("No fixtures in the next 24 hours.")
			return nil
		}
		for _, fx := range fixtures {
			fmt.Printf("%s  %s\n", fx.Date.Format("Mon 15:04"), fx.Title)
		}
		return nil
	},
}

// --- Predict Command ---

var predictCmd = &cobra.Command{
	Use:   "predict [match title]",
	Short: "Generate an AI prediction for a match",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		provider, err := llm.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		orch := predict.NewOrchestrator(provider, &llm.ChatOptions{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		fmt.Printf("🔮 Predicting: %s\n\n", title)
		result, err := orch.Predict(ctx, title)
		if err != nil {
			return err
		}

		fmt.Printf("Odds:            %s\n", result.Odds)
		fmt.Printf("Predicted score: %s\n", result.PredictedScore)
		fmt.Printf("Analysis:        %s\n", result.Analysis)
		return nil
	},
}
