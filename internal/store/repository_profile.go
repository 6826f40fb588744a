package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
)

type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a PostgreSQL-backed [ProfileRepository].
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{db: db, logger: logger}
}

// GetUserDetails returns the contact card of userID or
// [ErrUserDetailsNotFound].
func (r *profileRepository) GetUserDetails(ctx context.Context, userID int64) (models.UserDetails, error) {
	log := logger.FromContext(ctx)

	var (
		details                                   models.UserDetails
		phone, email, fbLink, instaLink, twitLink sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getUserDetails, userID).
		Scan(&details.UserID, &phone, &email, &fbLink, &instaLink, &twitLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserDetails{}, ErrUserDetailsNotFound
		}
		log.Err(err).Str("func", "*profileRepository.GetUserDetails").Msg("error reading user details")
		return models.UserDetails{}, r.db.wrapError(err)
	}

	details.Phone = nullableString(phone)
	details.Email = nullableString(email)
	details.FbLink = nullableString(fbLink)
	details.InstaLink = nullableString(instaLink)
	details.TwitLink = nullableString(twitLink)

	return details, nil
}

type catalogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCatalogRepository constructs a PostgreSQL-backed [CatalogRepository].
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{db: db, logger: logger}
}

// GetCatalogs returns currencies and contract names, each list led by
// [models.CatalogPlaceholder].
func (r *catalogRepository) GetCatalogs(ctx context.Context) (models.Catalogs, error) {
	currencies, err := r.readColumn(ctx, getAvailableCurrencies)
	if err != nil {
		return models.Catalogs{}, err
	}

	contracts, err := r.readColumn(ctx, getAvailableContracts)
	if err != nil {
		return models.Catalogs{}, err
	}

	return models.Catalogs{Currencies: currencies, Contracts: contracts}, nil
}

func (r *catalogRepository) readColumn(ctx context.Context, query string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.readColumn").Msg("error querying catalog")
		return nil, r.db.wrapError(err)
	}
	defer rows.Close()

	values := []string{models.CatalogPlaceholder}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, r.db.wrapError(err)
	}

	return values, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
