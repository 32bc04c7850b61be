package aggregate

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bardionson/gallery-cli/pkg/opensea"
)

func ask(tokenID, price string) opensea.Order {
	return opensea.Order{
		Side:             "ask",
		CurrentPrice:     price,
		MakerAssetBundle: &opensea.AssetBundle{Assets: []opensea.BundleAsset{{TokenID: tokenID}}},
	}
}

func TestResolve_MinimumAskPerToken(t *testing.T) {
	t.Parallel()

	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			return &opensea.ListingsResponse{Orders: []opensea.Order{
				ask("5", "2000000000000000000"),
				ask("5", "1500000000000000000"),
				ask("7", "300000000000000000"),
			}}, nil
		},
	}

	r := NewPriceResolver(client, fastOpts())
	got := r.Resolve(context.Background(), "0xA", []string{"5", "7"})

	require.Len(t, got, 2)
	assert.InDelta(t, 1.5, got["5"].Amount, 1e-12)
	assert.Equal(t, "1500000000000000000", got["5"].Raw)
	assert.InDelta(t, 0.3, got["7"].Amount, 1e-12)
}

func TestResolve_IgnoresCancelledFinalizedAndBids(t *testing.T) {
	t.Parallel()

	cancelled := ask("5", "100000000000000000")
	cancelled.Cancelled = true
	finalized := ask("5", "200000000000000000")
	finalized.Finalized = true
	bid := ask("5", "50000000000000000")
	bid.Side = "bid"

	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			return &opensea.ListingsResponse{Orders: []opensea.Order{
				cancelled, finalized, bid,
				ask("5", "900000000000000000"),
			}}, nil
		},
	}

	r := NewPriceResolver(client, fastOpts())
	got := r.Resolve(context.Background(), "0xA", []string{"5"})

	require.Len(t, got, 1)
	assert.InDelta(t, 0.9, got["5"].Amount, 1e-12)
}

func TestResolve_AllOrdersInactiveYieldsNoEntry(t *testing.T) {
	t.Parallel()

	cancelled := ask("5", "100000000000000000")
	cancelled.Cancelled = true
	finalized := ask("5", "200000000000000000")
	finalized.Finalized = true

	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			return &opensea.ListingsResponse{Orders: []opensea.Order{cancelled, finalized}}, nil
		},
	}

	r := NewPriceResolver(client, fastOpts())
	got := r.Resolve(context.Background(), "0xA", []string{"5"})

	assert.Empty(t, got)
}

func TestResolve_ChunksTokenIDs(t *testing.T) {
	t.Parallel()

	var chunks [][]string
	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			chunks = append(chunks, tokenIDs)
			return &opensea.ListingsResponse{}, nil
		},
	}

	opts := fastOpts()
	opts.ListingsChunkSize = 2
	r := NewPriceResolver(client, opts)
	r.Resolve(context.Background(), "0xA", []string{"1", "2", "3", "4", "5"})

	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"1", "2"}, chunks[0])
	assert.Equal(t, []string{"5"}, chunks[2])
}

func TestResolve_ChunkFailureKeepsOtherChunks(t *testing.T) {
	t.Parallel()

	var call int
	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			call++
			if call == 1 {
				return nil, eris.New("timeout")
			}
			return &opensea.ListingsResponse{Orders: []opensea.Order{ask("3", "1000000000000000000")}}, nil
		},
	}

	opts := fastOpts()
	opts.ListingsChunkSize = 2
	r := NewPriceResolver(client, opts)
	got := r.Resolve(context.Background(), "0xA", []string{"1", "2", "3"})

	require.Len(t, got, 1)
	assert.Contains(t, got, "3")
}

func TestResolve_RespectsOrderDecimals(t *testing.T) {
	t.Parallel()

	six := 6
	order := opensea.Order{
		Side:         "ask",
		CurrentPrice: "2500000",
		MakerAssetBundle: &opensea.AssetBundle{
			Assets: []opensea.BundleAsset{{TokenID: "5", Decimals: &six}},
		},
	}

	client := &fakeOpenSea{
		listings: func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
			return &opensea.ListingsResponse{Orders: []opensea.Order{order}}, nil
		},
	}

	r := NewPriceResolver(client, fastOpts())
	got := r.Resolve(context.Background(), "0xA", []string{"5"})

	require.Len(t, got, 1)
	assert.InDelta(t, 2.5, got["5"].Amount, 1e-12)
	assert.Equal(t, 6, got["5"].Decimals)
	assert.Equal(t, "2500000", got["5"].Raw)
}

func TestWeiToAmount(t *testing.T) {
	t.Parallel()

	amount, ok := weiToAmount("1500000000000000000", 18)
	require.True(t, ok)
	assert.InDelta(t, 1.5, amount, 1e-12)

	_, ok = weiToAmount("not-a-number", 18)
	assert.False(t, ok)

	// Ids beyond float64 integer precision still convert through decimal.
	amount, ok = weiToAmount("123456789012345678901234567890", 18)
	require.True(t, ok)
	assert.InDelta(t, 123456789012.345678901234567890, amount, 1e-3)
}
