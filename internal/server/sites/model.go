package sites

// InventoryItem is one line of a site's stock list.
type InventoryItem struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// Site is a construction-site record. The id is supplied by the caller, not
// generated by the store. OwnerID is set from the authenticated caller at
// creation time and never changes afterwards.
type Site struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Inventory []InventoryItem `json:"inventory"`
	OwnerID   string          `json:"ownerId"`
}
