package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/export"
	app "github.com/PolySpeedRunners/INF8808-Project/internal/app"
	"github.com/PolySpeedRunners/INF8808-Project/internal/config"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
)

const stdout = "-"

// cli holds state shared by subcommands.
type cli struct {
	configPath string
	dataDir    string
	logFormat  string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "medalctl",
		Short: "Olympic medal statistics pipeline",
		Long: `medalctl loads the Olympic results and country datasets, aggregates
medals per country and year-season, and prints or exports the result.

Configuration follows the server: defaults, then the YAML file named by
--config or MEDALS_CONFIG, then MEDALS_* environment variables.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Directory holding the CSV datasets")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", logger.FormatText, "Log format on stderr (text, json)")

	root.AddCommand(c.buildCmd())
	root.AddCommand(c.bucketsCmd())
	root.AddCommand(c.rankCmd())
	return root
}

// setup loads configuration and initializes logging on stderr.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" {
		if err := os.Setenv(config.EnvConfig, c.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
		cfg.DataBaseURL = ""
	}
	if err := logger.InitWithFormat(c.logFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.Named("medalctl")
	return nil
}

func (c *cli) run(ctx context.Context, minYear int) (*model.Snapshot, error) {
	p, err := app.NewPipeline(c.cfg, c.log)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, minYear)
}

func (c *cli) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the pipeline once and export the result",
		Long: `Run the pipeline once and export the snapshot.

Formats:
  json    "year,season" -> country code -> stats map
  xlsx    one sheet per year-season bucket plus a disciplines sheet
  sqlite  country_year_stats and discipline_stats tables

Example:
  medalctl build --min-year 2000 --format xlsx --out medals.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minYear, _ := cmd.Flags().GetInt("min-year")
			formatStr, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			if out == stdout && format != export.FormatJSON {
				return fmt.Errorf("--out is required for %s", format)
			}

			snap, err := c.run(cmd.Context(), minYear)
			if err != nil {
				return err
			}
			if out == stdout {
				return export.JSON(cmd.OutOrStdout(), snap)
			}
			if err := export.ToFile(cmd.Context(), format, snap, out); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			c.log.Info(cmd.Context(), "snapshot exported",
				logger.String("format", string(format)),
				logger.String("out", out),
				logger.Int("buckets", len(snap.Data)),
			)
			return nil
		},
	}
	cmd.Flags().Int("min-year", 0, "Earliest year kept (0 uses the configured min_year)")
	cmd.Flags().StringP("format", "f", string(export.FormatJSON), "Output format (json, xlsx, sqlite)")
	cmd.Flags().StringP("out", "o", stdout, "Output path, - for stdout (json only)")
	return cmd
}

func (c *cli) bucketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "List year-season buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minYear, _ := cmd.Flags().GetInt("min-year")
			snap, err := c.run(cmd.Context(), minYear)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, key := range snap.Data.Keys() {
				fmt.Fprintf(w, "%s\t%d countries\n", key, len(snap.Data[key]))
			}
			return nil
		},
	}
	cmd.Flags().Int("min-year", 0, "Earliest year kept (0 uses the configured min_year)")
	return cmd
}

func (c *cli) rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the medal ranking of one bucket",
		Long: `Print countries of one year-season bucket by medal score.

Example:
  medalctl rank --key 2000,Summer --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rawKey, _ := cmd.Flags().GetString("key")
			limit, _ := cmd.Flags().GetInt("limit")
			minYear, _ := cmd.Flags().GetInt("min-year")

			key, err := model.ParseYearSeasonKey(rawKey)
			if err != nil {
				return err
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			snap, err := c.run(cmd.Context(), minYear)
			if err != nil {
				return err
			}
			bucket, ok := snap.Data[key]
			if !ok {
				return fmt.Errorf("no bucket %s", key)
			}
			ranking := types.Rank(bucket)
			if len(ranking) > limit {
				ranking = ranking[:limit]
			}
			printRanking(cmd.OutOrStdout(), ranking)
			return nil
		},
	}
	cmd.Flags().String("key", "", "Bucket key, e.g. 2000,Summer")
	cmd.Flags().Int("limit", 10, "Number of countries to print")
	cmd.Flags().Int("min-year", 0, "Earliest year kept (0 uses the configured min_year)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func printRanking(w io.Writer, entries []types.Entry) {
	fmt.Fprintf(w, "%4s  %-4s  %-32s %6s %6s %4s %4s %4s\n", "RANK", "CODE", "COUNTRY", "SCORE", "MEDALS", "G", "S", "B")
	for _, e := range entries {
		fmt.Fprintf(w, "%4d  %-4s  %-32s %6d %6d %4d %4d %4d\n",
			e.Rank, e.Code, e.CountryName, e.MedalScore, e.TotalMedals, e.Gold, e.Silver, e.Bronze)
	}
}
