package models

// SortOrder selects how property lists are ordered.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// PropertyFilters narrows a property list. Zero values mean "any".
//
// Bedrooms: 1..4 exact, 5 means five or more.
// Bathrooms: 1..5 map to 1, 1.5, 2, 2.5, 3 exact; 6 means 3.5 or more.
// Garage: 1..3 exact, 4 means four or more cars.
// Floors: 1..2 exact, 3 means three or more.
type PropertyFilters struct {
	Bedrooms  int       `json:"bedrooms" validate:"gte=0,lte=5"`
	Bathrooms int       `json:"bathrooms" validate:"gte=0,lte=6"`
	Garage    int       `json:"garage" validate:"gte=0,lte=4"`
	Floors    int       `json:"floors" validate:"gte=0,lte=3"`
	Currency  int64     `json:"currency" validate:"gte=0"`
	Order     SortOrder `json:"order" validate:"omitempty,oneof=newest price_asc price_desc"`

	// VendorUserID restricts the list to a single vendor. Set by the
	// profile endpoint, never from the query string.
	VendorUserID int64 `json:"-" validate:"-"`
}
