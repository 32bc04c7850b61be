package opensea

// Asset is one NFT as reported by the OpenSea v2 API.
type Asset struct {
	Identifier      string `json:"identifier"`
	Collection      string `json:"collection"`
	Contract        string `json:"contract"`
	TokenStandard   string `json:"token_standard"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
	DisplayImageURL string `json:"display_image_url"`
	OpenSeaURL      string `json:"opensea_url"`
	UpdatedAt       string `json:"updated_at"`
}

// CollectionNFTsResponse is a page of a collection's item listing.
type CollectionNFTsResponse struct {
	NFTs []Asset `json:"nfts"`
	Next string  `json:"next"`
}

// NFTResponse wraps a single-asset lookup.
type NFTResponse struct {
	NFT *Asset `json:"nft"`
}

// AccountNFTsResponse is a page of an account's current holdings.
type AccountNFTsResponse struct {
	NFTs []Asset `json:"nfts"`
	Next string  `json:"next"`
}

// AssetEvent is one entry of an account's event history.
type AssetEvent struct {
	EventType   string `json:"event_type"`
	FromAddress string `json:"from_address"`
	NFT         *Asset `json:"nft"`
}

// AccountEventsResponse is a page of an account's event history.
type AccountEventsResponse struct {
	AssetEvents []AssetEvent `json:"asset_events"`
	Next        string       `json:"next"`
}

// Order is one seaport order from the listings endpoint.
type Order struct {
	Side             string       `json:"side"`
	Cancelled        bool         `json:"cancelled"`
	Finalized        bool         `json:"finalized"`
	CurrentPrice     string       `json:"current_price"`
	MakerAssetBundle *AssetBundle `json:"maker_asset_bundle"`
}

// AssetBundle holds the assets an order is selling.
type AssetBundle struct {
	Assets []BundleAsset `json:"assets"`
}

// BundleAsset identifies one token inside an order's bundle.
type BundleAsset struct {
	TokenID  string         `json:"token_id"`
	Decimals *int           `json:"decimals"`
	Contract *AssetContract `json:"asset_contract"`
}

// AssetContract is the contract entry nested in a bundle asset.
type AssetContract struct {
	Address string `json:"address"`
}

// ListingsResponse is a page of active listings for a contract.
type ListingsResponse struct {
	Orders []Order `json:"orders"`
	Next   string  `json:"next"`
}
