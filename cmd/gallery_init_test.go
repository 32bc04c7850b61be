package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bardionson/gallery-cli/internal/config"
	"github.com/bardionson/gallery-cli/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenSea: config.OpenSeaConfig{Key: "test-key", BaseURL: "http://localhost:0"},
		Pipeline: config.PipelineConfig{
			MaxPages:          2,
			PageDelayMillis:   10,
			PageSize:          25,
			ListingsChunkSize: 30,
			ChunkDelayMillis:  10,
			ContractBatchSize: 5,
			BatchDelayMillis:  10,
		},
	}
}

func TestPipelineOptions_MapsDurations(t *testing.T) {
	cfg = testConfig()

	opts := pipelineOptions()

	assert.Equal(t, 2, opts.MaxPages)
	assert.Equal(t, 10*time.Millisecond, opts.PageDelay)
	assert.Equal(t, 25, opts.PageSize)
	assert.Equal(t, 10*time.Millisecond, opts.BatchDelay)
}

func TestInitEngine_NoSourcesConfigured(t *testing.T) {
	cfg = testConfig()

	_, err := initEngine(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources configured")
}

func TestInitEngine_BuildsAdaptersFromConfig(t *testing.T) {
	cfg = testConfig()
	cfg.Targets = []model.Target{
		{Type: model.TargetCollection, Slug: "art-blocks"},
		{Type: model.TargetItem, Chain: "ethereum", Contract: "0xabc", TokenID: "7"},
	}
	cfg.Wallets = []string{"0xartist"}

	engine, err := initEngine(nil)

	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestCountingAdapter_RecordsFetchSizes(t *testing.T) {
	counts := make(map[string]int)
	inner := &staticAdapter{name: "stub", records: []model.NFT{{Identifier: "1"}, {Identifier: "2"}}}
	counting := &countingAdapter{Adapter: inner, counts: counts}

	got := counting.Fetch(context.Background())

	assert.Len(t, got, 2)
	assert.Equal(t, 2, counts["stub"])
}

type staticAdapter struct {
	name    string
	records []model.NFT
}

func (s *staticAdapter) Name() string { return s.name }

func (s *staticAdapter) Fetch(context.Context) []model.NFT { return s.records }
