package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/aggregate"
	"github.com/bardionson/gallery-cli/internal/enrich"
	"github.com/bardionson/gallery-cli/internal/fetcher"
	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/internal/store"
	"github.com/bardionson/gallery-cli/pkg/alchemy"
	"github.com/bardionson/gallery-cli/pkg/opensea"
	"github.com/bardionson/gallery-cli/pkg/superrare"
)

// initStore opens the run-history database, creating its directory on first
// use. Callers should defer st.Close().
func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "create store directory %s", dir)
		}
	}
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

func pipelineOptions() aggregate.Options {
	p := cfg.Pipeline
	return aggregate.Options{
		MaxPages:          p.MaxPages,
		PageDelay:         time.Duration(p.PageDelayMillis) * time.Millisecond,
		PageSize:          p.PageSize,
		ListingsChunkSize: p.ListingsChunkSize,
		ChunkDelay:        time.Duration(p.ChunkDelayMillis) * time.Millisecond,
		ContractBatchSize: p.ContractBatchSize,
		BatchDelay:        time.Duration(p.BatchDelayMillis) * time.Millisecond,
	}
}

// countingAdapter wraps an adapter and records how many records it produced,
// keyed by adapter name. The engine fetches sequentially, so plain map writes
// are safe.
type countingAdapter struct {
	aggregate.Adapter
	counts map[string]int
}

func (c *countingAdapter) Fetch(ctx context.Context) []model.NFT {
	records := c.Adapter.Fetch(ctx)
	c.counts[c.Name()] += len(records)
	return records
}

// initEngine builds the API clients and source adapters from config and wires
// them into an aggregation engine. Sources whose credentials or settings are
// absent are skipped with a warning rather than failing the run.
func initEngine(counts map[string]int) (*aggregate.Engine, error) {
	sharedFetcher := fetcher.New(fetcher.Options{RateLimiters: fetcher.DefaultRateLimiters()})
	opts := pipelineOptions()

	if cfg.OpenSea.Key == "" {
		zap.L().Warn("GALLERY_OPENSEA_KEY not set, OpenSea requests will likely be rejected")
	}
	osClient := opensea.NewClient(cfg.OpenSea.Key,
		opensea.WithBaseURL(cfg.OpenSea.BaseURL),
		opensea.WithFetcher(sharedFetcher),
	)

	var adapters []aggregate.Adapter

	for _, target := range cfg.Targets {
		switch target.Type {
		case model.TargetCollection:
			adapters = append(adapters, aggregate.NewCollectionAdapter(osClient, target.Slug, opts))
		case model.TargetItem:
			adapters = append(adapters, aggregate.NewItemAdapter(osClient, target.Chain, target.Contract, target.TokenID))
		default:
			zap.L().Warn("unknown target type, skipping", zap.String("type", string(target.Type)))
		}
	}

	for _, wallet := range cfg.Wallets {
		adapters = append(adapters, aggregate.NewMintEventAdapter(osClient, wallet, opts))
		adapters = append(adapters, aggregate.NewHoldingsAdapter(osClient, "ethereum", wallet, opts))
	}

	if cfg.Alchemy.Key == "" {
		zap.L().Warn("GALLERY_ALCHEMY_KEY not set, skipping minted-NFT discovery")
	} else {
		alClient := alchemy.NewClient(cfg.Alchemy.Key,
			alchemy.WithBaseURL(cfg.Alchemy.BaseURL),
			alchemy.WithFetcher(sharedFetcher),
		)
		for _, wallet := range cfg.Wallets {
			adapters = append(adapters, aggregate.NewMintedAdapter(alClient, wallet, opts))
		}
	}

	if cfg.SuperRare.Creator == "" {
		zap.L().Debug("superrare creator not configured, skipping SuperRare source")
	} else {
		srClient := superrare.NewClient(
			superrare.WithBaseURL(cfg.SuperRare.BaseURL),
			superrare.WithFetcher(sharedFetcher),
		)
		adapters = append(adapters, aggregate.NewSuperRareAdapter(srClient, cfg.SuperRare.Creator, cfg.SuperRare.Contracts))
	}

	if len(adapters) == 0 {
		return nil, eris.New("no sources configured: set targets, wallets, or a superrare creator")
	}

	if counts != nil {
		for i, a := range adapters {
			adapters[i] = &countingAdapter{Adapter: a, counts: counts}
		}
	}

	zap.L().Info("sources configured", zap.Int("adapters", len(adapters)))
	return aggregate.NewEngine(adapters, osClient, opts), nil
}

// runPipeline executes a full aggregation and returns the enriched, sorted
// collections together with run statistics.
func runPipeline(ctx context.Context) ([]enrich.Collection, *model.RunStats, error) {
	started := time.Now()
	counts := make(map[string]int)

	engine, err := initEngine(counts)
	if err != nil {
		return nil, nil, err
	}

	grouped, err := engine.Run(ctx)
	if err != nil {
		return nil, nil, eris.Wrap(err, "aggregation run")
	}

	displayCfg, err := enrich.LoadConfig(cfg.Pipeline.CollectionsConfig)
	if err != nil {
		zap.L().Warn("collections config not loaded, using raw slugs", zap.Error(err))
		displayCfg = enrich.Config{}
	}
	collections := enrich.AndSort(grouped, displayCfg)

	stats := &model.RunStats{
		SourceCounts: counts,
		Collections:  len(collections),
		DurationMS:   time.Since(started).Milliseconds(),
	}
	for _, n := range counts {
		stats.Fetched += n
	}
	for _, c := range collections {
		stats.Deduped += len(c.NFTs)
		for _, n := range c.NFTs {
			if n.Price != nil {
				stats.Priced++
			}
		}
	}

	return collections, stats, nil
}
