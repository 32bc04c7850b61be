// Package opensea provides a client for the OpenSea v2 REST API.
package opensea

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bardionson/gallery-cli/internal/fetcher"
)

// Client defines the OpenSea operations used by the aggregation pipeline.
type Client interface {
	// CollectionNFTs fetches one page of a collection's item listing.
	CollectionNFTs(ctx context.Context, slug, cursor string, limit int) (*CollectionNFTsResponse, error)
	// NFT fetches a single token by chain, contract and token id.
	NFT(ctx context.Context, chain, contract, tokenID string) (*NFTResponse, error)
	// AccountNFTs fetches one page of an account's current holdings.
	AccountNFTs(ctx context.Context, chain, address, cursor string, limit int) (*AccountNFTsResponse, error)
	// AccountEvents fetches one page of an account's transfer-event history.
	AccountEvents(ctx context.Context, address, cursor string, limit int) (*AccountEventsResponse, error)
	// Listings fetches active seaport listings for a contract and token-id set.
	Listings(ctx context.Context, contract string, tokenIDs []string) (*ListingsResponse, error)
}

// Option configures the OpenSea client.
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

// NewClient creates a new OpenSea v2 client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.opensea.io/api/v2",
		fetcher: fetcher.New(fetcher.Options{RateLimiters: fetcher.DefaultRateLimiters()}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) headers() map[string]string {
	return map[string]string{"x-api-key": c.apiKey}
}

func (c *httpClient) CollectionNFTs(ctx context.Context, slug, cursor string, limit int) (*CollectionNFTsResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("next", cursor)
	}
	reqURL := fmt.Sprintf("%s/collection/%s/nfts?%s", c.baseURL, url.PathEscape(slug), params.Encode())

	var resp CollectionNFTsResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) NFT(ctx context.Context, chain, contract, tokenID string) (*NFTResponse, error) {
	reqURL := fmt.Sprintf("%s/chain/%s/contract/%s/nfts/%s",
		c.baseURL, url.PathEscape(chain), url.PathEscape(contract), url.PathEscape(tokenID))

	var resp NFTResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) AccountNFTs(ctx context.Context, chain, address, cursor string, limit int) (*AccountNFTsResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("next", cursor)
	}
	reqURL := fmt.Sprintf("%s/chain/%s/account/%s/nfts?%s",
		c.baseURL, url.PathEscape(chain), url.PathEscape(address), params.Encode())

	var resp AccountNFTsResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) AccountEvents(ctx context.Context, address, cursor string, limit int) (*AccountEventsResponse, error) {
	params := url.Values{}
	params.Set("event_type", "transfer")
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("next", cursor)
	}
	reqURL := fmt.Sprintf("%s/events/accounts/%s?%s", c.baseURL, url.PathEscape(address), params.Encode())

	var resp AccountEventsResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Listings(ctx context.Context, contract string, tokenIDs []string) (*ListingsResponse, error) {
	params := url.Values{}
	params.Set("asset_contract_address", contract)
	for _, id := range tokenIDs {
		params.Add("token_ids", id)
	}
	reqURL := fmt.Sprintf("%s/orders/ethereum/seaport/listings?%s", c.baseURL, params.Encode())

	var resp ListingsResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
