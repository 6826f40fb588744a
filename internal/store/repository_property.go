package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
)

type propertyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPropertyRepository constructs a PostgreSQL-backed [PropertyRepository].
func NewPropertyRepository(db *DB, logger *logger.Logger) PropertyRepository {
	logger.Debug().Msg("creating property repository")
	return &propertyRepository{
		db:     db,
		logger: logger,
	}
}

// ListProperties returns the list cards matching filters. Only properties
// with a main photo appear, since the view joins on it.
func (r *propertyRepository) ListProperties(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPropertiesQuery(filters)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.ListProperties").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.ListProperties").Msg("error querying properties")
		return nil, r.db.wrapError(err)
	}
	defer rows.Close()

	properties := make([]models.BasicProperty, 0)
	for rows.Next() {
		var p models.BasicProperty
		if err := rows.Scan(
			&p.PropertyID,
			&p.PhotoURL,
			&p.Address,
			&p.Username,
			&p.TerrainHeight,
			&p.TerrainWidth,
			&p.Price,
			&p.CurrencySymbol,
			&p.CurrencyCode,
			&p.ContractType,
			&p.BedroomAmount,
			&p.BathroomAmount,
			&p.FloorAmount,
			&p.GarageSize,
		); err != nil {
			log.Err(err).Str("func", "*propertyRepository.ListProperties").Msg("error scanning property")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*propertyRepository.ListProperties").Msg("error iterating properties")
		return nil, r.db.wrapError(err)
	}

	return properties, nil
}

// GetProperty returns the details of one property with its photos, main
// photo first.
func (r *propertyRepository) GetProperty(ctx context.Context, propertyID int64) (models.Property, error) {
	log := logger.FromContext(ctx)

	var p models.Property
	err := r.db.QueryRowContext(ctx, getPropertyData, propertyID).Scan(
		&p.PropertyID,
		&p.VendorUserID,
		&p.Address,
		&p.Description,
		&p.Username,
		&p.UserRating,
		&p.Price,
		&p.CurrencySymbol,
		&p.CurrencyCode,
		&p.Latitude,
		&p.Longitude,
		&p.TerrainHeight,
		&p.TerrainWidth,
		&p.BedroomAmount,
		&p.BathroomAmount,
		&p.FloorAmount,
		&p.GarageSize,
		&p.ContractType,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Property{}, ErrPropertyNotFound
		}
		log.Err(err).Str("func", "*propertyRepository.GetProperty").Msg("error reading property")
		return models.Property{}, r.db.wrapError(err)
	}

	photos, err := r.getPhotos(ctx, propertyID)
	if err != nil {
		return models.Property{}, err
	}
	p.Photos = photos

	return p, nil
}

func (r *propertyRepository) getPhotos(ctx context.Context, propertyID int64) ([]models.Photo, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getPropertyPhotos, propertyID)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.getPhotos").Msg("error querying photos")
		return nil, r.db.wrapError(err)
	}
	defer rows.Close()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		var (
			photo       models.Photo
			description sql.NullString
		)
		if err := rows.Scan(&photo.URL, &description, &photo.IsMain); err != nil {
			log.Err(err).Str("func", "*propertyRepository.getPhotos").Msg("error scanning photo")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if description.Valid {
			photo.Description = &description.String
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, r.db.wrapError(err)
	}

	return photos, nil
}

// GetPropertyOwner returns the vendor user id of a property or
// [ErrPropertyNotFound].
func (r *propertyRepository) GetPropertyOwner(ctx context.Context, propertyID int64) (int64, error) {
	log := logger.FromContext(ctx)

	var owner int64
	if err := r.db.QueryRowContext(ctx, getPropertyOwner, propertyID).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPropertyNotFound
		}
		log.Err(err).Str("func", "*propertyRepository.GetPropertyOwner").Msg("error reading owner")
		return 0, r.db.wrapError(err)
	}

	return owner, nil
}

// CreateProperty inserts a listing owned by vendorUserID and returns its id.
func (r *propertyRepository) CreateProperty(ctx context.Context, vendorUserID int64, p models.PropertyRequest) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.QueryRowContext(ctx, createProperty,
		vendorUserID,
		p.Address,
		p.Description,
		p.Price,
		p.CurrencyID,
		p.ContractType,
		p.Latitude,
		p.Longitude,
		p.TerrainHeight,
		p.TerrainWidth,
		p.BedroomAmount,
		p.BathroomAmount,
		p.FloorAmount,
		p.GarageSize,
	).Scan(&id)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.CreateProperty").Msg("error creating property")
		if classifyFailure(err) == failureForeignKeyViolation {
			return 0, ErrUnknownReference
		}
		return 0, r.db.wrapError(err)
	}

	return id, nil
}

// UpdateProperty applies a partial update and returns the affected row count.
func (r *propertyRepository) UpdateProperty(ctx context.Context, propertyID int64, update models.PropertyUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePropertyQuery(propertyID, update)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.UpdateProperty").Msg("error building query")
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.UpdateProperty").Msg("error updating property")
		if classifyFailure(err) == failureForeignKeyViolation {
			return 0, ErrUnknownReference
		}
		return 0, r.db.wrapError(err)
	}

	return result.RowsAffected()
}

// DeleteProperty removes a property; its photos go with it (ON DELETE CASCADE).
func (r *propertyRepository) DeleteProperty(ctx context.Context, propertyID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteProperty, propertyID)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.DeleteProperty").Msg("error deleting property")
		return 0, r.db.wrapError(err)
	}

	return result.RowsAffected()
}

// AddPhotos inserts photo rows in a single transaction. When one of them is
// a main photo, the previous main photo is demoted first.
func (r *propertyRepository) AddPhotos(ctx context.Context, propertyID int64, photos []models.Photo) (err error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*propertyRepository.AddPhotos").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, photo := range photos {
		if !photo.IsMain {
			continue
		}
		if _, err = tx.ExecContext(ctx, unsetMainPhoto, propertyID); err != nil {
			log.Err(err).Str("func", "*propertyRepository.AddPhotos").Msg("error demoting main photo")
			return r.db.wrapError(err)
		}
		break
	}

	for _, photo := range photos {
		if _, err = tx.ExecContext(ctx, insertPhoto, propertyID, photo.URL, photo.Description, photo.IsMain); err != nil {
			log.Err(err).Str("func", "*propertyRepository.AddPhotos").Msg("error inserting photo")
			if classifyFailure(err) == failureForeignKeyViolation {
				return ErrPropertyNotFound
			}
			return r.db.wrapError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*propertyRepository.AddPhotos").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
