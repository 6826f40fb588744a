package models

// Catalogs lists the selectable currencies and contract types. The first
// entry of every list is the "---" placeholder used by the UI as "any".
type Catalogs struct {
	Currencies []string `json:"currencies"`
	Contracts  []string `json:"contracts"`
}

// CatalogPlaceholder is prepended to every catalog list.
const CatalogPlaceholder = "---"
