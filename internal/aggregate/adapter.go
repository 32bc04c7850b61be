// Package aggregate implements the multi-source NFT aggregation and
// reconciliation pipeline: source adapters, price resolution, dedup and
// collection grouping.
package aggregate

import (
	"context"
	"time"

	"github.com/bardionson/gallery-cli/internal/model"
)

// Adapter discovers NFTs from one source. Implementations swallow their own
// transport and parse errors: a failing source logs a warning and returns a
// shorter (possibly empty) slice, never an error that could abort siblings.
// Records come back with price unset; pricing is the engine's concern.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) []model.NFT
}

// Options holds the pacing and bounding knobs shared across the pipeline.
type Options struct {
	MaxPages          int
	PageDelay         time.Duration
	PageSize          int
	ListingsChunkSize int
	ChunkDelay        time.Duration
	ContractBatchSize int
	BatchDelay        time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxPages == 0 {
		o.MaxPages = 5
	}
	if o.PageDelay == 0 {
		o.PageDelay = 200 * time.Millisecond
	}
	if o.PageSize == 0 {
		o.PageSize = 50
	}
	if o.ListingsChunkSize == 0 {
		o.ListingsChunkSize = 30
	}
	if o.ChunkDelay == 0 {
		o.ChunkDelay = 500 * time.Millisecond
	}
	if o.ContractBatchSize == 0 {
		o.ContractBatchSize = 5
	}
	if o.BatchDelay == 0 {
		o.BatchDelay = time.Second
	}
	return o
}
