// Package model defines the canonical NFT record shared by every pipeline stage.
package model

// ZeroAddress is the null Ethereum address. A transfer originating from it is a mint.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Price is the single best active ask for a token. Amount is a display
// derivative of Raw; Raw keeps the original integer wei string so no
// precision is lost in the float conversion.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Decimals int     `json:"decimals"`
	Raw      string  `json:"raw"`
}

// MarketPrice is one per-marketplace price observation.
type MarketPrice struct {
	Market   string  `json:"market"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	URL      string  `json:"url,omitempty"`
}

// NFT is the canonical record produced by source adapters. Identity is the
// (Contract, Identifier) pair; Identifier stays an opaque decimal string
// because token ids routinely exceed float64 precision.
type NFT struct {
	Identifier      string        `json:"identifier"`
	Collection      string        `json:"collection"`
	Contract        string        `json:"contract"`
	TokenStandard   string        `json:"token_standard"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	ImageURL        string        `json:"image_url"`
	DisplayImageURL string        `json:"display_image_url"`
	OpenSeaURL      string        `json:"opensea_url"`
	SuperRareURL    string        `json:"superrare_url,omitempty"`
	UpdatedAt       string        `json:"updated_at"`
	Price           *Price        `json:"price"`
	MarketPrices    []MarketPrice `json:"marketPrices,omitempty"`
}

// Key returns the deduplication identity for the record.
func (n NFT) Key() string {
	return n.Contract + "-" + n.Identifier
}

// HasImage reports whether the record carries any usable image URL.
func (n NFT) HasImage() bool {
	return n.ImageURL != "" || n.DisplayImageURL != ""
}

// CollectionGroup is a slug-keyed bucket of records. Grouping always keys on
// the slug, never the display name, so colliding display names stay separate.
type CollectionGroup struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	NFTs []NFT  `json:"nfts"`
}

// TargetType discriminates configured discovery targets.
type TargetType string

const (
	TargetCollection TargetType = "collection"
	TargetItem       TargetType = "item"
)

// Target seeds the aggregation: either a whole collection by slug or a single
// token by chain/contract/id.
type Target struct {
	Type     TargetType `json:"type" yaml:"type" mapstructure:"type"`
	Slug     string     `json:"slug,omitempty" yaml:"slug,omitempty" mapstructure:"slug"`
	Chain    string     `json:"chain,omitempty" yaml:"chain,omitempty" mapstructure:"chain"`
	Contract string     `json:"contract,omitempty" yaml:"contract,omitempty" mapstructure:"contract"`
	TokenID  string     `json:"token_id,omitempty" yaml:"token_id,omitempty" mapstructure:"token_id"`
}
