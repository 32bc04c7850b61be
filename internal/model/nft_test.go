package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFTKey(t *testing.T) {
	t.Parallel()

	a := NFT{Contract: "0xabc", Identifier: "1"}
	b := NFT{Contract: "0xabc", Identifier: "1", Name: "different metadata"}
	c := NFT{Contract: "0xdef", Identifier: "1"}

	assert.Equal(t, "0xabc-1", a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestNFTHasImage(t *testing.T) {
	t.Parallel()

	assert.False(t, NFT{}.HasImage())
	assert.True(t, NFT{ImageURL: "https://img.example/a.png"}.HasImage())
	assert.True(t, NFT{DisplayImageURL: "https://img.example/a.png"}.HasImage())
}

func TestNFTJSON_FieldNames(t *testing.T) {
	t.Parallel()

	n := NFT{
		Identifier: "21",
		Collection: "superrare",
		Contract:   "0x41a322b28d0ff354040e2cbc676f0320d8c8850d",
		Price:      &Price{Amount: 1.5, Currency: "ETH", Decimals: 18, Raw: "1500000000000000000"},
		MarketPrices: []MarketPrice{
			{Market: "OpenSea", Amount: 1.5, Currency: "ETH"},
		},
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "identifier")
	assert.Contains(t, raw, "token_standard")
	assert.Contains(t, raw, "marketPrices", "market prices keep their legacy camelCase key")
	assert.NotContains(t, raw, "superrare_url", "empty superrare_url is omitted")
}

func TestRunStatsJSON_OmitsEmptySourceCounts(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(RunStats{Fetched: 3})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "source_counts")
	assert.Contains(t, raw, "duration_ms")
}
