package aggregate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/pkg/superrare"
)

// SuperRareAdapter queries SuperRare's own creator endpoint instead of the
// aggregator. The native ask is mapped straight into marketPrices, so
// SuperRare-only pieces carry a price even when no aggregator listing exists.
type SuperRareAdapter struct {
	client    superrare.Client
	creator   string
	contracts []string
}

// NewSuperRareAdapter creates an adapter for the configured creator address
// and contract allowlist.
func NewSuperRareAdapter(client superrare.Client, creator string, contracts []string) *SuperRareAdapter {
	return &SuperRareAdapter{client: client, creator: creator, contracts: contracts}
}

func (a *SuperRareAdapter) Name() string { return "superrare:" + a.creator }

func (a *SuperRareAdapter) Fetch(ctx context.Context) []model.NFT {
	resp, err := a.client.CreatorArtworks(ctx, a.creator, a.contracts)
	if err != nil {
		zap.L().Warn("superrare creator fetch failed",
			zap.String("creator", a.creator),
			zap.Error(err),
		)
		return nil
	}

	nfts := make([]model.NFT, 0, len(resp.Artworks))
	for _, art := range resp.Artworks {
		nfts = append(nfts, artworkToNFT(art))
	}

	zap.L().Info("superrare artworks fetched",
		zap.String("creator", a.creator),
		zap.Int("count", len(nfts)),
	)
	return nfts
}

func artworkToNFT(art superrare.Artwork) model.NFT {
	n := model.NFT{
		Identifier:      art.TokenID,
		Collection:      "superrare",
		Contract:        strings.ToLower(art.ContractAddress),
		TokenStandard:   "erc721",
		Name:            art.Name,
		Description:     art.Description,
		ImageURL:        art.Image,
		DisplayImageURL: art.Image,
		OpenSeaURL:      "https://opensea.io/assets/ethereum/" + strings.ToLower(art.ContractAddress) + "/" + art.TokenID,
		SuperRareURL:    art.URL,
		UpdatedAt:       art.CreatedAt,
	}

	if art.Ask != nil && art.Ask.AmountWei != "" {
		currency := art.Ask.Currency
		if currency == "" {
			currency = "ETH"
		}
		if amount, ok := weiToAmount(art.Ask.AmountWei, ethDecimals); ok {
			n.Price = &model.Price{
				Amount:   amount,
				Currency: currency,
				Decimals: ethDecimals,
				Raw:      art.Ask.AmountWei,
			}
			n.MarketPrices = append(n.MarketPrices, model.MarketPrice{
				Market:   "SuperRare",
				Amount:   amount,
				Currency: currency,
				URL:      art.URL,
			})
		}
	}

	return n
}
