package cheapshark

// Game is one result from the CheapShark game search. Prices arrive as
// string-encoded decimals and are kept that way on the wire.
type Game struct {
	GameID         string `json:"gameID"`
	SteamAppID     string `json:"steamAppID"`
	Cheapest       string `json:"cheapest"`
	CheapestDealID string `json:"cheapestDealID"`
	External       string `json:"external"`
	InternalName   string `json:"internalName"`
	Thumb          string `json:"thumb"`
}

// Deal is one store's current offer for a game.
type Deal struct {
	StoreID     string `json:"storeID"`
	DealID      string `json:"dealID"`
	Price       string `json:"price"`
	RetailPrice string `json:"retailPrice"`
	Savings     string `json:"savings"`
}

// GameDetails is the per-game lookup response: current deals plus the
// lowest price ever recorded.
type GameDetails struct {
	Info              GameInfo    `json:"info"`
	CheapestPriceEver CheapestRef `json:"cheapestPriceEver"`
	Deals             []Deal      `json:"deals"`
}

// GameInfo identifies the game a details response belongs to.
type GameInfo struct {
	Title      string `json:"title"`
	SteamAppID string `json:"steamAppID"`
	Thumb      string `json:"thumb"`
}

// CheapestRef is a historical price point. Date is a Unix timestamp in
// seconds.
type CheapestRef struct {
	Price string `json:"price"`
	Date  int64  `json:"date"`
}

// Store is one entry from the store directory.
type Store struct {
	StoreID   string      `json:"storeID"`
	StoreName string      `json:"storeName"`
	IsActive  int         `json:"isActive"`
	Images    StoreImages `json:"images"`
}

// StoreImages holds the relative image paths for a store.
type StoreImages struct {
	Banner string `json:"banner"`
	Logo   string `json:"logo"`
	Icon   string `json:"icon"`
}
