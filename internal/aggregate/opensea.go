package aggregate

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/internal/pager"
	"github.com/bardionson/gallery-cli/pkg/opensea"
)

// assetToNFT maps the OpenSea asset shape onto the canonical record. The
// collection key is overridden by callers that know better (configured slug,
// platform name).
func assetToNFT(a opensea.Asset) model.NFT {
	return model.NFT{
		Identifier:      a.Identifier,
		Collection:      a.Collection,
		Contract:        a.Contract,
		TokenStandard:   a.TokenStandard,
		Name:            a.Name,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		DisplayImageURL: a.DisplayImageURL,
		OpenSeaURL:      a.OpenSeaURL,
		UpdatedAt:       a.UpdatedAt,
		Price:           nil,
	}
}

// CollectionAdapter walks a collection's item listing by slug.
type CollectionAdapter struct {
	client opensea.Client
	slug   string
	opts   Options
}

// NewCollectionAdapter creates an adapter for one configured collection slug.
func NewCollectionAdapter(client opensea.Client, slug string, opts Options) *CollectionAdapter {
	return &CollectionAdapter{client: client, slug: slug, opts: opts.withDefaults()}
}

func (a *CollectionAdapter) Name() string { return "opensea-collection:" + a.slug }

func (a *CollectionAdapter) Fetch(ctx context.Context) []model.NFT {
	nfts := pager.Walk(ctx, a.Name(), a.opts.MaxPages, a.opts.PageDelay,
		func(ctx context.Context, cursor string) ([]model.NFT, string, error) {
			resp, err := a.client.CollectionNFTs(ctx, a.slug, cursor, a.opts.PageSize)
			if err != nil {
				return nil, "", err
			}
			items := lo.Map(resp.NFTs, func(asset opensea.Asset, _ int) model.NFT {
				n := assetToNFT(asset)
				// The configured slug is the grouping key; the source-reported
				// collection name may vary per item and is discarded.
				n.Collection = a.slug
				return n
			})
			return items, resp.Next, nil
		})

	zap.L().Info("collection fetched",
		zap.String("slug", a.slug),
		zap.Int("count", len(nfts)),
	)
	return nfts
}

// ItemAdapter fetches exactly one token by chain, contract and token id.
type ItemAdapter struct {
	client   opensea.Client
	chain    string
	contract string
	tokenID  string
}

// NewItemAdapter creates an adapter for one configured single-token target.
func NewItemAdapter(client opensea.Client, chain, contract, tokenID string) *ItemAdapter {
	return &ItemAdapter{client: client, chain: chain, contract: contract, tokenID: tokenID}
}

func (a *ItemAdapter) Name() string { return "opensea-item:" + a.contract + "/" + a.tokenID }

func (a *ItemAdapter) Fetch(ctx context.Context) []model.NFT {
	resp, err := a.client.NFT(ctx, a.chain, a.contract, a.tokenID)
	if err != nil {
		zap.L().Warn("single item fetch failed",
			zap.String("contract", a.contract),
			zap.String("token_id", a.tokenID),
			zap.Error(err),
		)
		return nil
	}
	if resp.NFT == nil {
		return nil
	}
	return []model.NFT{assetToNFT(*resp.NFT)}
}

// MintEventAdapter walks an account's transfer-event history and keeps only
// mints. It discovers creations that have since been sold away from the
// creator's wallet, which ownership-based discovery cannot see.
type MintEventAdapter struct {
	client  opensea.Client
	address string
	opts    Options
}

// NewMintEventAdapter creates an adapter over one wallet's event history.
func NewMintEventAdapter(client opensea.Client, address string, opts Options) *MintEventAdapter {
	return &MintEventAdapter{client: client, address: address, opts: opts.withDefaults()}
}

func (a *MintEventAdapter) Name() string { return "opensea-mints:" + a.address }

// isMint reports whether the event represents a token creation. Sources tag
// mints inconsistently: some report an explicit "mint" event type, others a
// transfer from the zero address. Either marker counts.
func isMint(ev opensea.AssetEvent) bool {
	return ev.EventType == "mint" || strings.EqualFold(ev.FromAddress, model.ZeroAddress)
}

func (a *MintEventAdapter) Fetch(ctx context.Context) []model.NFT {
	nfts := pager.Walk(ctx, a.Name(), a.opts.MaxPages, a.opts.PageDelay,
		func(ctx context.Context, cursor string) ([]model.NFT, string, error) {
			resp, err := a.client.AccountEvents(ctx, a.address, cursor, a.opts.PageSize)
			if err != nil {
				return nil, "", err
			}
			var items []model.NFT
			for _, ev := range resp.AssetEvents {
				if !isMint(ev) || ev.NFT == nil {
					continue
				}
				n := assetToNFT(*ev.NFT)
				if n.Collection == "" {
					n.Collection = "unknown"
				}
				items = append(items, n)
			}
			return items, resp.Next, nil
		})

	zap.L().Info("mint events fetched",
		zap.String("wallet", a.address),
		zap.Int("count", len(nfts)),
	)
	return nfts
}

// HoldingsAdapter walks an account's current holdings. It cannot see
// disposed-of items but is cheap and reliable for what it does see.
type HoldingsAdapter struct {
	client  opensea.Client
	chain   string
	address string
	opts    Options
}

// NewHoldingsAdapter creates an adapter over one wallet's current holdings.
func NewHoldingsAdapter(client opensea.Client, chain, address string, opts Options) *HoldingsAdapter {
	return &HoldingsAdapter{client: client, chain: chain, address: address, opts: opts.withDefaults()}
}

func (a *HoldingsAdapter) Name() string { return "opensea-holdings:" + a.address }

func (a *HoldingsAdapter) Fetch(ctx context.Context) []model.NFT {
	nfts := pager.Walk(ctx, a.Name(), a.opts.MaxPages, a.opts.PageDelay,
		func(ctx context.Context, cursor string) ([]model.NFT, string, error) {
			resp, err := a.client.AccountNFTs(ctx, a.chain, a.address, cursor, a.opts.PageSize)
			if err != nil {
				return nil, "", err
			}
			items := lo.Map(resp.NFTs, func(asset opensea.Asset, _ int) model.NFT {
				n := assetToNFT(asset)
				if n.Collection == "" {
					n.Collection = "unknown"
				}
				return n
			})
			return items, resp.Next, nil
		})

	zap.L().Info("holdings fetched",
		zap.String("wallet", a.address),
		zap.Int("count", len(nfts)),
	)
	return nfts
}
