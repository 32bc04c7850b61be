package aggregate

import (
	"context"
	"time"

	"github.com/bardionson/gallery-cli/internal/model"
	"github.com/bardionson/gallery-cli/pkg/alchemy"
	"github.com/bardionson/gallery-cli/pkg/opensea"
	"github.com/bardionson/gallery-cli/pkg/superrare"
)

// fastOpts keeps test runs quick: real pacing knobs, token delays.
func fastOpts() Options {
	return Options{
		MaxPages:          5,
		PageDelay:         time.Millisecond,
		PageSize:          50,
		ListingsChunkSize: 30,
		ChunkDelay:        time.Millisecond,
		ContractBatchSize: 5,
		BatchDelay:        time.Millisecond,
	}
}

type fakeOpenSea struct {
	collectionNFTs func(ctx context.Context, slug, cursor string, limit int) (*opensea.CollectionNFTsResponse, error)
	nft            func(ctx context.Context, chain, contract, tokenID string) (*opensea.NFTResponse, error)
	accountNFTs    func(ctx context.Context, chain, address, cursor string, limit int) (*opensea.AccountNFTsResponse, error)
	accountEvents  func(ctx context.Context, address, cursor string, limit int) (*opensea.AccountEventsResponse, error)
	listings       func(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error)
}

func (f *fakeOpenSea) CollectionNFTs(ctx context.Context, slug, cursor string, limit int) (*opensea.CollectionNFTsResponse, error) {
	if f.collectionNFTs == nil {
		return &opensea.CollectionNFTsResponse{}, nil
	}
	return f.collectionNFTs(ctx, slug, cursor, limit)
}

func (f *fakeOpenSea) NFT(ctx context.Context, chain, contract, tokenID string) (*opensea.NFTResponse, error) {
	if f.nft == nil {
		return &opensea.NFTResponse{}, nil
	}
	return f.nft(ctx, chain, contract, tokenID)
}

func (f *fakeOpenSea) AccountNFTs(ctx context.Context, chain, address, cursor string, limit int) (*opensea.AccountNFTsResponse, error) {
	if f.accountNFTs == nil {
		return &opensea.AccountNFTsResponse{}, nil
	}
	return f.accountNFTs(ctx, chain, address, cursor, limit)
}

func (f *fakeOpenSea) AccountEvents(ctx context.Context, address, cursor string, limit int) (*opensea.AccountEventsResponse, error) {
	if f.accountEvents == nil {
		return &opensea.AccountEventsResponse{}, nil
	}
	return f.accountEvents(ctx, address, cursor, limit)
}

func (f *fakeOpenSea) Listings(ctx context.Context, contract string, tokenIDs []string) (*opensea.ListingsResponse, error) {
	if f.listings == nil {
		return &opensea.ListingsResponse{}, nil
	}
	return f.listings(ctx, contract, tokenIDs)
}

type fakeAlchemy struct {
	mintedNFTs func(ctx context.Context, owner, pageKey string) (*alchemy.MintedNFTsResponse, error)
}

func (f *fakeAlchemy) MintedNFTs(ctx context.Context, owner, pageKey string) (*alchemy.MintedNFTsResponse, error) {
	return f.mintedNFTs(ctx, owner, pageKey)
}

type fakeSuperRare struct {
	creatorArtworks func(ctx context.Context, creator string, contracts []string) (*superrare.CreatorArtworksResponse, error)
}

func (f *fakeSuperRare) CreatorArtworks(ctx context.Context, creator string, contracts []string) (*superrare.CreatorArtworksResponse, error) {
	return f.creatorArtworks(ctx, creator, contracts)
}

// stubAdapter feeds fixed records into the engine.
type stubAdapter struct {
	name    string
	records []model.NFT
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context) []model.NFT { return s.records }

func record(contract, id, collection string) model.NFT {
	return model.NFT{
		Identifier: id,
		Contract:   contract,
		Collection: collection,
		Name:       contract + "/" + id,
		ImageURL:   "https://img.example/" + id + ".png",
	}
}
