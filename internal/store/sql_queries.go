package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/fast-home/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, email_verified, token_fragment, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, email_verified, token_fragment, created_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT user_id, username, email, password_hash, email_verified, token_fragment, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, email_verified, token_fragment, created_at
    FROM users
    WHERE user_id = $1;`

	setVerified = `UPDATE users
    SET email_verified = TRUE
    WHERE user_id = $1 AND email_verified = FALSE;`

	setPasswordHash = `UPDATE users
    SET password_hash = $2
    WHERE user_id = $1;`

	setTokenFragment = `UPDATE users
    SET token_fragment = $2
    WHERE user_id = $1;`

	getTokenFragment = `SELECT token_fragment
    FROM users
    WHERE user_id = $1;`

	consumeTokenFragment = `UPDATE users
    SET token_fragment = NULL
    WHERE user_id = $1 AND token_fragment = $2;`

	getPropertyData = `SELECT property_id, vendor_user_id, address, description, username, user_rating,
        price, currency_symbol, currency_code, latitude, longitude, terrain_height, terrain_width,
        bedroom_amount, bathroom_amount, floor_amount, garage_size, contract_type, created_at
    FROM property_data
    WHERE property_id = $1;`

	getPropertyPhotos = `SELECT photo_url, description, is_main_photo
    FROM photos
    WHERE property_id = $1
    ORDER BY is_main_photo DESC, photo_id;`

	getPropertyOwner = `SELECT vendor_user_id
    FROM properties
    WHERE property_id = $1;`

	createProperty = `INSERT INTO properties (vendor_user_id, address, description, price, currency_id,
        contract_type, latitude, longitude, terrain_height, terrain_width, bedroom_amount,
        bathroom_amount, floor_amount, garage_size)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    RETURNING property_id;`

	deleteProperty = `DELETE FROM properties
    WHERE property_id = $1;`

	unsetMainPhoto = `UPDATE photos
    SET is_main_photo = FALSE
    WHERE property_id = $1 AND is_main_photo;`

	insertPhoto = `INSERT INTO photos (property_id, photo_url, description, is_main_photo)
    VALUES ($1, $2, $3, $4);`

	getUserDetails = `SELECT user_id, phone, email, fb_link, insta_link, twit_link
    FROM user_details
    WHERE user_id = $1;`

	getAvailableCurrencies = `SELECT currency
    FROM available_currencies
    ORDER BY currency_id;`

	getAvailableContracts = `SELECT contract_name
    FROM available_contracts
    ORDER BY contract_id;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var basicPropertyColumns = []string{
	"property_id",
	"photo_url",
	"address",
	"username",
	"terrain_height",
	"terrain_width",
	"price",
	"currency_symbol",
	"currency_code",
	"contract_type",
	"bedroom_amount",
	"bathroom_amount",
	"floor_amount",
	"garage_size",
}

// Top buckets of the list filters mean "this many or more".
const (
	bedroomsOrMore  = 5
	bathroomsOrMore = 6
	garageOrMore    = 4
	floorsOrMore    = 3
)

// bathroomAmount converts a bathrooms filter bucket (1..5) to the stored
// half-step value: 1, 1.5, 2, 2.5, 3.
func bathroomAmount(bucket int) float64 {
	return 0.5 + 0.5*float64(bucket)
}

// buildListPropertiesQuery builds the parameterized SELECT over the
// basic_property_data view for the given filters.
func buildListPropertiesQuery(filters models.PropertyFilters) (string, []any, error) {
	query := psql.Select(basicPropertyColumns...).From("basic_property_data")

	switch {
	case filters.Bedrooms >= bedroomsOrMore:
		query = query.Where(sq.GtOrEq{"bedroom_amount": bedroomsOrMore})
	case filters.Bedrooms > 0:
		query = query.Where(sq.Eq{"bedroom_amount": filters.Bedrooms})
	}

	switch {
	case filters.Bathrooms >= bathroomsOrMore:
		query = query.Where(sq.GtOrEq{"bathroom_amount": 3.5})
	case filters.Bathrooms > 0:
		query = query.Where(sq.Eq{"bathroom_amount": bathroomAmount(filters.Bathrooms)})
	}

	switch {
	case filters.Garage >= garageOrMore:
		query = query.Where(sq.GtOrEq{"garage_size": garageOrMore})
	case filters.Garage > 0:
		query = query.Where(sq.Eq{"garage_size": filters.Garage})
	}

	switch {
	case filters.Floors >= floorsOrMore:
		query = query.Where(sq.GtOrEq{"floor_amount": floorsOrMore})
	case filters.Floors > 0:
		query = query.Where(sq.Eq{"floor_amount": filters.Floors})
	}

	if filters.Currency > 0 {
		query = query.Where(sq.Eq{"currency_id": filters.Currency})
	}

	if filters.VendorUserID > 0 {
		query = query.Where(sq.Eq{"vendor_user_id": filters.VendorUserID})
	}

	switch filters.Order {
	case models.SortPriceAsc:
		query = query.OrderBy("price ASC", "property_id ASC")
	case models.SortPriceDesc:
		query = query.OrderBy("price DESC", "property_id DESC")
	default:
		query = query.OrderBy("created_at DESC", "property_id DESC")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}

// buildUpdatePropertyQuery builds an UPDATE that only touches the fields set
// in update.
func buildUpdatePropertyQuery(propertyID int64, update models.PropertyUpdate) (string, []any, error) {
	set := make(map[string]any, 13)

	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Latitude != nil {
		set["latitude"] = *update.Latitude
	}
	if update.Longitude != nil {
		set["longitude"] = *update.Longitude
	}
	if update.TerrainHeight != nil {
		set["terrain_height"] = *update.TerrainHeight
	}
	if update.TerrainWidth != nil {
		set["terrain_width"] = *update.TerrainWidth
	}
	if update.BedroomAmount != nil {
		set["bedroom_amount"] = *update.BedroomAmount
	}
	if update.BathroomAmount != nil {
		set["bathroom_amount"] = *update.BathroomAmount
	}
	if update.FloorAmount != nil {
		set["floor_amount"] = *update.FloorAmount
	}
	if update.GarageSize != nil {
		set["garage_size"] = *update.GarageSize
	}
	if update.ContractType != nil {
		set["contract_type"] = *update.ContractType
	}
	if update.CurrencyID != nil {
		set["currency_id"] = *update.CurrencyID
	}

	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	sqlStr, args, err := psql.Update("properties").
		SetMap(set).
		Where(sq.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}
