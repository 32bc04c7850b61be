// Package superrare provides a client for the SuperRare creator API.
//
// SuperRare's shared contracts host thousands of artists, so a full-contract
// scan through the aggregator API is infeasible. The creator endpoint answers
// "all artworks by address X on these contracts" in one query.
package superrare

import (
	"context"
	"fmt"

	"github.com/bardionson/gallery-cli/internal/fetcher"
)

// Client defines the SuperRare operations used by the aggregation pipeline.
type Client interface {
	// CreatorArtworks fetches every artwork minted by the creator on the
	// allowlisted contracts, including the current ask where one exists.
	CreatorArtworks(ctx context.Context, creator string, contracts []string) (*CreatorArtworksResponse, error)
}

// CreatorArtworksResponse is the creator query result.
type CreatorArtworksResponse struct {
	Artworks []Artwork `json:"artworks"`
	Total    int       `json:"total"`
}

// Artwork is one SuperRare piece. TokenID stays a string; SuperRare ids fit
// in an int today but the canonical model treats ids as opaque.
type Artwork struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	URL             string `json:"url"`
	CreatedAt       string `json:"createdAt"`
	Ask             *Ask   `json:"ask"`
}

// Ask is an active sale price in wei.
type Ask struct {
	AmountWei string `json:"amountWei"`
	Currency  string `json:"currency"`
}

// Option configures the SuperRare client.
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
	baseURL string
	fetcher *fetcher.HTTPFetcher
}

// NewClient creates a new SuperRare creator API client. The API is public;
// no key is required.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.superrare.com",
		fetcher: fetcher.New(fetcher.Options{RateLimiters: fetcher.DefaultRateLimiters()}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) CreatorArtworks(ctx context.Context, creator string, contracts []string) (*CreatorArtworksResponse, error) {
	reqURL := fmt.Sprintf("%s/v2/artworks/by-creator", c.baseURL)

	body := map[string]any{
		"creatorAddress":    creator,
		"contractAddresses": contracts,
	}

	var resp CreatorArtworksResponse
	if err := c.fetcher.PostJSON(ctx, reqURL, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
