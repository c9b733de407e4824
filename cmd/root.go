package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nt-noc/comparedash/internal/config"
	"github.com/nt-noc/comparedash/pkg/compareapi"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "comparedash",
	Short: "Client for the circuit comparison dashboard",
	Long:  "Uploads master/compare datasets, browses comparison jobs, and derives filtered record views, grouped summaries, and impact reports with spreadsheet/PNG/PDF export.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// apiClient builds the backend client from config.
func apiClient() compareapi.Client {
	return compareapi.NewClient(cfg.API.BaseURL,
		compareapi.WithTimeout(time.Duration(cfg.API.TimeoutSecs)*time.Second),
		compareapi.WithPageSize(cfg.API.PageSize),
		compareapi.WithRateLimit(cfg.API.RateLimit),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
