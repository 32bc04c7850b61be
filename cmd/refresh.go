package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/snapshot"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run the aggregation pipeline and write a fresh snapshot",
	Long:  "Fetches every configured source, reconciles duplicates, resolves asks, groups by collection and writes the JSON snapshot. The run is recorded in the history store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Run history is best-effort: a broken store never blocks a refresh.
		st, err := initStore(ctx)
		if err != nil {
			zap.L().Warn("run store unavailable, refresh will not be recorded", zap.Error(err))
			st = nil
		} else {
			defer st.Close() //nolint:errcheck
		}

		var runID string
		if st != nil {
			run, err := st.CreateRun(ctx)
			if err != nil {
				zap.L().Warn("could not record run start", zap.Error(err))
			} else {
				runID = run.ID
			}
		}

		collections, stats, err := runPipeline(ctx)
		if err != nil {
			if st != nil && runID != "" {
				if ferr := st.FailRun(ctx, runID, err); ferr != nil {
					zap.L().Warn("could not record run failure", zap.Error(ferr))
				}
			}
			return err
		}

		if err := snapshot.Write(cfg.Snapshot.Path, collections); err != nil {
			if st != nil && runID != "" {
				if ferr := st.FailRun(ctx, runID, err); ferr != nil {
					zap.L().Warn("could not record run failure", zap.Error(ferr))
				}
			}
			return eris.Wrap(err, "write snapshot")
		}

		if st != nil && runID != "" {
			if err := st.CompleteRun(ctx, runID, stats); err != nil {
				zap.L().Warn("could not record run completion", zap.Error(err))
			}
		}

		zap.L().Info("refresh complete",
			zap.String("snapshot", cfg.Snapshot.Path),
			zap.Int("collections", stats.Collections),
			zap.Int("records", stats.Deduped),
			zap.Int("priced", stats.Priced),
			zap.Int64("duration_ms", stats.DurationMS),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
