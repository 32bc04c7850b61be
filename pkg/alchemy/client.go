// Package alchemy provides a client for the Alchemy NFT API (v3).
package alchemy

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bardionson/gallery-cli/internal/fetcher"
)

// Client defines the Alchemy operations used by the aggregation pipeline.
type Client interface {
	// MintedNFTs fetches one page of tokens minted by the given address.
	// pageKey is Alchemy's opaque pagination token; empty fetches the first page.
	MintedNFTs(ctx context.Context, owner, pageKey string) (*MintedNFTsResponse, error)
}

// MintedNFTsResponse is one page of the minted-token enumeration.
type MintedNFTsResponse struct {
	NFTs    []MintedNFT `json:"nfts"`
	PageKey string      `json:"pageKey"`
}

// MintedNFT is one minted token as reported by Alchemy.
type MintedNFT struct {
	TokenID         string   `json:"tokenId"`
	TokenType       string   `json:"tokenType"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Contract        Contract `json:"contract"`
	Image           Image    `json:"image"`
	TimeLastUpdated string   `json:"timeLastUpdated"`
}

// Contract describes the token's contract.
type Contract struct {
	Address         string          `json:"address"`
	OpenSeaMetadata OpenSeaMetadata `json:"openSeaMetadata"`
}

// OpenSeaMetadata carries the OpenSea-indexed collection name, when known.
type OpenSeaMetadata struct {
	CollectionName string `json:"collectionName"`
	CollectionSlug string `json:"collectionSlug"`
}

// Image holds the media URLs Alchemy resolved for the token.
type Image struct {
	CachedURL    string `json:"cachedUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	OriginalURL  string `json:"originalUrl"`
}

// Option configures the Alchemy client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithFetcher sets a custom HTTP fetcher.
func WithFetcher(f *fetcher.HTTPFetcher) Option {
	return func(c *httpClient) {
		c.fetcher = f
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	fetcher *fetcher.HTTPFetcher
}

// NewClient creates a new Alchemy NFT API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://eth-mainnet.g.alchemy.com/nft/v3",
		fetcher: fetcher.New(fetcher.Options{RateLimiters: fetcher.DefaultRateLimiters()}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) MintedNFTs(ctx context.Context, owner, pageKey string) (*MintedNFTsResponse, error) {
	params := url.Values{}
	params.Set("owner", owner)
	if pageKey != "" {
		params.Set("pageKey", pageKey)
	}
	reqURL := fmt.Sprintf("%s/%s/getMintedNfts?%s", c.baseURL, url.PathEscape(c.apiKey), params.Encode())

	var resp MintedNFTsResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
