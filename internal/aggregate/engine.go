package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/pkg/opensea"
)

// Engine orchestrates a full aggregation run: adapters, dedup, image
// backfill, bounded-parallel price resolution and collection grouping.
// The engine owns the in-flight record set for the duration of a run;
// the returned grouping is the caller's.
type Engine struct {
	adapters []Adapter
	resolver *PriceResolver
	opensea  opensea.Client
	opts     Options
}

// NewEngine creates an engine over the given adapters. The OpenSea client is
// used for image backfill and price resolution.
func NewEngine(adapters []Adapter, client opensea.Client, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		adapters: adapters,
		resolver: NewPriceResolver(client, opts),
		opensea:  client,
		opts:     opts,
	}
}

// Run executes the pipeline and returns records grouped by collection slug.
// Individual source or contract failures degrade to partial data; Run itself
// errs only on a cancelled context.
func (e *Engine) Run(ctx context.Context) (map[string]model.CollectionGroup, error) {
	// 1-2. Every adapter, sequentially; concatenate whatever comes back.
	var records []model.NFT
	for _, adapter := range e.adapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, adapter.Fetch(ctx)...)
	}
	zap.L().Info("sources fetched",
		zap.Int("adapters", len(e.adapters)),
		zap.Int("records", len(records)),
	)

	// 3. Dedup across overlapping discovery paths.
	records = Dedupe(records)

	// Backfill images the cheaper discovery paths did not carry.
	e.backfillImages(ctx, records)

	// 4-6. Price resolution over distinct contracts.
	e.attachPrices(ctx, records)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 7-8. Group by collection key.
	return GroupByCollection(records), nil
}

// Dedupe drops records whose (contract, identifier) pair was already seen.
// First occurrence wins, so adapter order decides which metadata survives
// for shared tokens.
func Dedupe(records []model.NFT) []model.NFT {
	seen := make(map[string]struct{}, len(records))
	unique := make([]model.NFT, 0, len(records))
	for _, n := range records {
		key := n.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, n)
	}
	if len(unique) < len(records) {
		zap.L().Info("deduplicated records",
			zap.Int("before", len(records)),
			zap.Int("after", len(unique)),
		)
	}
	return unique
}

// backfillImages re-fetches records with no image from the single-item
// endpoint. Purely best-effort.
func (e *Engine) backfillImages(ctx context.Context, records []model.NFT) {
	for i := range records {
		if records[i].HasImage() {
			continue
		}
		resp, err := e.opensea.NFT(ctx, "ethereum", records[i].Contract, records[i].Identifier)
		if err != nil || resp.NFT == nil {
			zap.L().Warn("image backfill failed",
				zap.String("contract", records[i].Contract),
				zap.String("token_id", records[i].Identifier),
				zap.Error(err),
			)
			continue
		}
		records[i].ImageURL = firstNonEmpty(resp.NFT.ImageURL, resp.NFT.DisplayImageURL)
		records[i].DisplayImageURL = firstNonEmpty(resp.NFT.DisplayImageURL, resp.NFT.ImageURL)

		t := time.NewTimer(e.opts.PageDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// attachPrices resolves asks per contract in fixed-size concurrent batches
// with a pause between batches, then merges the quotes onto the records.
func (e *Engine) attachPrices(ctx context.Context, records []model.NFT) {
	contracts, tokensByContract := groupByContract(records)
	if len(contracts) == 0 {
		return
	}

	var mu sync.Mutex
	resolved := make(map[string]map[string]model.Price, len(contracts))

	for i, batch := range lo.Chunk(contracts, e.opts.ContractBatchSize) {
		if i > 0 {
			t := time.NewTimer(e.opts.BatchDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, contract := range batch {
			g.Go(func() error {
				prices := e.resolver.Resolve(gctx, contract, tokensByContract[contract])
				if len(prices) == 0 {
					return nil
				}
				mu.Lock()
				resolved[contract] = prices
				mu.Unlock()
				return nil
			})
		}
		// Resolve never returns an error; Wait only propagates ctx cancellation.
		_ = g.Wait()
	}

	for i := range records {
		quote, ok := resolved[records[i].Contract][records[i].Identifier]
		if !ok {
			continue
		}
		AttachQuote(&records[i], "OpenSea", quote, records[i].OpenSeaURL)
	}
}

// AttachQuote merges a resolved quote onto a record: the quote is appended to
// marketPrices under the given market name (at most once, so re-running the
// step cannot duplicate an entry) and replaces price when it is the new
// cheapest ETH ask.
func AttachQuote(n *model.NFT, market string, quote model.Price, link string) {
	hasMarket := lo.SomeBy(n.MarketPrices, func(p model.MarketPrice) bool {
		return p.Market == market
	})
	if !hasMarket {
		n.MarketPrices = append(n.MarketPrices, model.MarketPrice{
			Market:   market,
			Amount:   quote.Amount,
			Currency: quote.Currency,
			URL:      link,
		})
	}

	if n.Price == nil || quote.Amount < n.Price.Amount {
		q := quote
		n.Price = &q
	}
}

// groupByContract builds the per-contract token worklist for pricing,
// preserving first-seen contract order.
func groupByContract(records []model.NFT) ([]string, map[string][]string) {
	var contracts []string
	tokens := make(map[string][]string)
	for _, n := range records {
		if _, ok := tokens[n.Contract]; !ok {
			contracts = append(contracts, n.Contract)
		}
		tokens[n.Contract] = append(tokens[n.Contract], n.Identifier)
	}
	return contracts, tokens
}

// GroupByCollection buckets records by their collection key. Groups are
// created lazily on first record; insertion order within a group follows
// discovery order.
func GroupByCollection(records []model.NFT) map[string]model.CollectionGroup {
	grouped := make(map[string]model.CollectionGroup)
	for _, n := range records {
		slug := n.Collection
		group, ok := grouped[slug]
		if !ok {
			group = model.CollectionGroup{Name: slug, Slug: slug}
		}
		group.NFTs = append(group.NFTs, n)
		grouped[slug] = group
	}
	return grouped
}
