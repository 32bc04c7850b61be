package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/enrich"
	"github.com/bardionson/gallery-cli/internal/snapshot"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the aggregated snapshot over HTTP",
	Long:  "Read-only API over the snapshot file. When no snapshot exists yet, the first request triggers a live aggregation run and persists its result.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loader := &snapshotLoader{path: cfg.Snapshot.Path}

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("GET /api/collections", func(w http.ResponseWriter, r *http.Request) {
			collections, err := loader.load(r.Context())
			if err != nil {
				zap.L().Error("collections request failed", zap.Error(err))
				http.Error(w, `{"error":"snapshot unavailable"}`, http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(collections)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// snapshotLoader reads the snapshot file, falling back to a live pipeline run
// when the file does not exist yet. The mutex keeps concurrent first requests
// from spawning duplicate runs.
type snapshotLoader struct {
	path string
	mu   sync.Mutex
}

func (l *snapshotLoader) load(ctx context.Context) ([]enrich.Collection, error) {
	collections, err := snapshot.Load(l.path)
	if err == nil {
		return collections, nil
	}
	if !os.IsNotExist(eris.Cause(err)) {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another request may have produced the snapshot while we waited.
	if collections, err := snapshot.Load(l.path); err == nil {
		return collections, nil
	}

	zap.L().Info("no snapshot on disk, running live aggregation")
	collections, _, err = runPipeline(ctx)
	if err != nil {
		return nil, err
	}
	if err := snapshot.Write(l.path, collections); err != nil {
		zap.L().Warn("could not persist live snapshot", zap.Error(err))
	}
	return collections, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
