package aggregate

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/pkg/opensea"
)

// ethDecimals is the precision used for ETH-denominated orders.
const ethDecimals = 18

// weiToAmount converts an integer minor-unit string to a display amount.
// The raw string stays the source of truth; this float is for display only.
func weiToAmount(raw string, decimals int) (float64, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, false
	}
	amount, _ := d.Shift(int32(-decimals)).Float64()
	return amount, true
}

// PriceResolver reduces a contract's active listings to the minimum ask per
// token. Token ids are queried in fixed-size chunks to stay under the
// listings endpoint's query-parameter limit, with a pause between chunks.
type PriceResolver struct {
	client opensea.Client
	opts   Options
}

// NewPriceResolver creates a resolver over the listings endpoint.
func NewPriceResolver(client opensea.Client, opts Options) *PriceResolver {
	return &PriceResolver{client: client, opts: opts.withDefaults()}
}

// Resolve returns the cheapest active ask per token id. Tokens with no
// active ask are absent from the result. A chunk failure is logged and
// skipped; the result covers whatever chunks succeeded.
func (r *PriceResolver) Resolve(ctx context.Context, contract string, tokenIDs []string) map[string]model.Price {
	prices := make(map[string]model.Price)

	for i, chunk := range lo.Chunk(tokenIDs, r.opts.ListingsChunkSize) {
		if i > 0 {
			t := time.NewTimer(r.opts.ChunkDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return prices
			case <-t.C:
			}
		}

		resp, err := r.client.Listings(ctx, contract, chunk)
		if err != nil {
			zap.L().Warn("listings chunk failed",
				zap.String("contract", contract),
				zap.Int("chunk", i),
				zap.Error(err),
			)
			continue
		}

		for _, order := range resp.Orders {
			reduceOrder(prices, order)
		}
	}

	return prices
}

// reduceOrder folds one order into the per-token minimum. Only active asks
// count: sell side, not cancelled, not finalized.
func reduceOrder(prices map[string]model.Price, order opensea.Order) {
	if order.Side != "ask" || order.Cancelled || order.Finalized {
		return
	}
	if order.MakerAssetBundle == nil || len(order.MakerAssetBundle.Assets) == 0 {
		return
	}

	asset := order.MakerAssetBundle.Assets[0]
	if asset.TokenID == "" || order.CurrentPrice == "" {
		return
	}

	decimals := ethDecimals
	if asset.Decimals != nil && *asset.Decimals > 0 {
		decimals = *asset.Decimals
	}

	amount, ok := weiToAmount(order.CurrentPrice, decimals)
	if !ok {
		return
	}

	best, exists := prices[asset.TokenID]
	if !exists || amount < best.Amount {
		prices[asset.TokenID] = model.Price{
			Amount:   amount,
			Currency: "ETH",
			Decimals: decimals,
			Raw:      order.CurrentPrice,
		}
	}
}
