package opensea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionNFTs_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collection/genesis-tokens/nfts", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "abc", r.URL.Query().Get("next"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"nfts": [
				{"identifier": "1", "contract": "0xabc", "collection": "genesis-tokens", "name": "One"},
				{"identifier": "2", "contract": "0xabc", "collection": "genesis-tokens", "name": "Two"}
			],
			"next": "def"
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.CollectionNFTs(context.Background(), "genesis-tokens", "abc", 50)

	require.NoError(t, err)
	require.Len(t, got.NFTs, 2)
	assert.Equal(t, "1", got.NFTs[0].Identifier)
	assert.Equal(t, "def", got.Next)
}

func TestNFT_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chain/ethereum/contract/0xabc/nfts/42", r.URL.Path)
		w.Write([]byte(`{"nft": {"identifier": "42", "contract": "0xabc", "name": "Answer"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.NFT(context.Background(), "ethereum", "0xabc", "42")

	require.NoError(t, err)
	require.NotNil(t, got.NFT)
	assert.Equal(t, "Answer", got.NFT.Name)
}

func TestNFT_MissingPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.NFT(context.Background(), "ethereum", "0xabc", "42")

	require.NoError(t, err)
	assert.Nil(t, got.NFT)
}

func TestAccountEvents_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/accounts/0xwallet", r.URL.Path)
		assert.Equal(t, "transfer", r.URL.Query().Get("event_type"))
		w.Write([]byte(`{
			"asset_events": [
				{"event_type": "transfer", "from_address": "0x0000000000000000000000000000000000000000", "nft": {"identifier": "7", "contract": "0xabc"}}
			],
			"next": ""
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.AccountEvents(context.Background(), "0xwallet", "", 50)

	require.NoError(t, err)
	require.Len(t, got.AssetEvents, 1)
	assert.Equal(t, "7", got.AssetEvents[0].NFT.Identifier)
	assert.Empty(t, got.Next)
}

func TestListings_EncodesTokenIDs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ethereum/seaport/listings", r.URL.Path)
		assert.Equal(t, "0xabc", r.URL.Query().Get("asset_contract_address"))
		assert.Equal(t, []string{"1", "2", "3"}, r.URL.Query()["token_ids"])
		w.Write([]byte(`{
			"orders": [
				{"side": "ask", "cancelled": false, "finalized": false, "current_price": "1500000000000000000",
				 "maker_asset_bundle": {"assets": [{"token_id": "1"}]}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Listings(context.Background(), "0xabc", []string{"1", "2", "3"})

	require.NoError(t, err)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "ask", got.Orders[0].Side)
	assert.Equal(t, "1500000000000000000", got.Orders[0].CurrentPrice)
}

func TestListings_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Listings(context.Background(), "0xabc", []string{"1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
