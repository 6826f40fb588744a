package models

import "time"

// BasicProperty is the card shown in property lists. Only properties that
// already have a main photo are listed.
type BasicProperty struct {
	PropertyID     int64   `json:"propertyId"`
	PhotoURL       string  `json:"photoURL"`
	Address        string  `json:"address"`
	Username       string  `json:"username"`
	TerrainHeight  float64 `json:"terrainHeight"`
	TerrainWidth   float64 `json:"terrainWidth"`
	Price          float64 `json:"price"`
	CurrencySymbol string  `json:"currencySymbol"`
	CurrencyCode   string  `json:"currencyCode"`
	ContractType   int64   `json:"contractType"`
	BedroomAmount  int64   `json:"bedroomAmount"`
	// BathroomAmount goes in half steps; .5 means a restroom.
	BathroomAmount float64 `json:"bathroomAmount"`
	FloorAmount    int64   `json:"floorAmount"`
	GarageSize     int64   `json:"garageSize"`
}

// Property contains every detail of a single listing, used by the details
// page.
type Property struct {
	PropertyID     int64     `json:"propertyId"`
	VendorUserID   int64     `json:"-"`
	Address        string    `json:"address"`
	Description    string    `json:"description"`
	Username       string    `json:"username"`
	UserRating     float64   `json:"userRating"`
	Price          float64   `json:"price"`
	CurrencySymbol string    `json:"currencySymbol"`
	CurrencyCode   string    `json:"currencyCode"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	TerrainHeight  float64   `json:"terrainHeight"`
	TerrainWidth   float64   `json:"terrainWidth"`
	BedroomAmount  int64     `json:"bedroomAmount"`
	BathroomAmount float64   `json:"bathroomAmount"`
	FloorAmount    int64     `json:"floorAmount"`
	GarageSize     int64     `json:"garageSize"`
	ContractType   int64     `json:"contractType"`
	CreatedAt      time.Time `json:"createdAt"`
	Photos         []Photo   `json:"photos"`
}

// PropertyRequest is the body of a create request. Every field is
// required except Description.
type PropertyRequest struct {
	Address        string  `json:"address" validate:"required,max=255"`
	Description    string  `json:"description" validate:"max=2000"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	Latitude       float64 `json:"latitude" validate:"required,latitude"`
	Longitude      float64 `json:"longitude" validate:"required,longitude"`
	TerrainHeight  float64 `json:"terrainHeight" validate:"required,gt=0"`
	TerrainWidth   float64 `json:"terrainWidth" validate:"required,gt=0"`
	BedroomAmount  int64   `json:"bedroomAmount" validate:"gte=0"`
	BathroomAmount float64 `json:"bathroomAmount" validate:"gte=0"`
	FloorAmount    int64   `json:"floorAmount" validate:"required,gte=1"`
	GarageSize     int64   `json:"garageSize" validate:"gte=0"`
	ContractType   int64   `json:"contractType" validate:"required,gte=1"`
	CurrencyID     int64   `json:"currencyId" validate:"required,gte=1"`
}

// PropertyUpdate is a partial update: only non-nil fields are written.
type PropertyUpdate struct {
	Address        *string  `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	Description    *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Latitude       *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	TerrainHeight  *float64 `json:"terrainHeight,omitempty" validate:"omitempty,gt=0"`
	TerrainWidth   *float64 `json:"terrainWidth,omitempty" validate:"omitempty,gt=0"`
	BedroomAmount  *int64   `json:"bedroomAmount,omitempty" validate:"omitempty,gte=0"`
	BathroomAmount *float64 `json:"bathroomAmount,omitempty" validate:"omitempty,gte=0"`
	FloorAmount    *int64   `json:"floorAmount,omitempty" validate:"omitempty,gte=1"`
	GarageSize     *int64   `json:"garageSize,omitempty" validate:"omitempty,gte=0"`
	ContractType   *int64   `json:"contractType,omitempty" validate:"omitempty,gte=1"`
	CurrencyID     *int64   `json:"currencyId,omitempty" validate:"omitempty,gte=1"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u PropertyUpdate) IsEmpty() bool {
	return u.Address == nil && u.Description == nil && u.Price == nil &&
		u.Latitude == nil && u.Longitude == nil &&
		u.TerrainHeight == nil && u.TerrainWidth == nil &&
		u.BedroomAmount == nil && u.BathroomAmount == nil &&
		u.FloorAmount == nil && u.GarageSize == nil &&
		u.ContractType == nil && u.CurrencyID == nil
}

// Photo is a picture attached to a property.
type Photo struct {
	URL         string  `json:"url"`
	Description *string `json:"description"`
	IsMain      bool    `json:"-"`
}

// PhotoUpload is a single file received from a multipart request.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// IDResponse is returned when a resource is created.
type IDResponse struct {
	ID int64 `json:"id"`
}
