package aggregate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/internal/pager"
	"github.com/bardionson/gallery-cli/pkg/alchemy"
)

// Known shared contracts for the minting platforms the artist published on.
// Tokens minted on these are regrouped under a synthetic platform slug,
// since the aggregator's per-item collection names vary wildly.
var platformContracts = map[string]string{
	"0x41a322b28d0ff354040e2cbc676f0320d8c8850d": "superrare", // SuperRare V1
	"0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0": "superrare", // SuperRare V2
	"0xfbeef911dc5821886e1dda71586d90ed28174b7d": "knownorigin",
	"0x2a46f2ffd99e19a89476e2f62270e0a35bbf0756": "makersplace",
	"0xb6dae651468e9593e4581705a09c10a76ac1e0c8": "async-art",
}

// platformSlug resolves the synthetic platform collection for a token, first
// by contract, then by collection-name heuristics. Empty means no match.
func platformSlug(contract, collectionName string) string {
	if slug, ok := platformContracts[strings.ToLower(contract)]; ok {
		return slug
	}
	name := strings.ToLower(collectionName)
	for _, slug := range []string{"superrare", "knownorigin", "makersplace"} {
		if strings.Contains(name, slug) {
			return slug
		}
	}
	return ""
}

// MintedAdapter enumerates tokens minted by a wallet through the wallet
// indexer and keeps the ones on known platform contracts.
type MintedAdapter struct {
	client  alchemy.Client
	address string
	opts    Options
}

// NewMintedAdapter creates an adapter over one wallet's minted tokens.
func NewMintedAdapter(client alchemy.Client, address string, opts Options) *MintedAdapter {
	return &MintedAdapter{client: client, address: address, opts: opts.withDefaults()}
}

func (a *MintedAdapter) Name() string { return "alchemy-minted:" + a.address }

func (a *MintedAdapter) Fetch(ctx context.Context) []model.NFT {
	nfts := pager.Walk(ctx, a.Name(), a.opts.MaxPages, a.opts.PageDelay,
		func(ctx context.Context, pageKey string) ([]model.NFT, string, error) {
			resp, err := a.client.MintedNFTs(ctx, a.address, pageKey)
			if err != nil {
				return nil, "", err
			}
			var items []model.NFT
			for _, minted := range resp.NFTs {
				slug := platformSlug(minted.Contract.Address, minted.Contract.OpenSeaMetadata.CollectionName)
				if slug == "" {
					continue
				}
				items = append(items, mintedToNFT(minted, slug))
			}
			return items, resp.PageKey, nil
		})

	zap.L().Info("minted tokens fetched",
		zap.String("wallet", a.address),
		zap.Int("count", len(nfts)),
	)
	return nfts
}

func mintedToNFT(m alchemy.MintedNFT, slug string) model.NFT {
	contract := strings.ToLower(m.Contract.Address)

	image := m.Image.CachedURL
	if image == "" {
		image = m.Image.OriginalURL
	}

	name := m.Name
	if name == "" {
		name = "#" + m.TokenID
	}

	standard := strings.ToLower(m.TokenType)
	if standard == "" {
		standard = "erc721"
	}

	return model.NFT{
		Identifier:      m.TokenID,
		Collection:      slug,
		Contract:        contract,
		TokenStandard:   standard,
		Name:            name,
		Description:     m.Description,
		ImageURL:        image,
		DisplayImageURL: image,
		OpenSeaURL:      fmt.Sprintf("https://opensea.io/assets/ethereum/%s/%s", contract, m.TokenID),
		UpdatedAt:       m.TimeLastUpdated,
		Price:           nil,
	}
}
