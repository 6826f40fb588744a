package store

import (
	"context"

	"github.com/MKhiriev/fast-home/models"
)

//go:generate mockgen -destination=../mock/store_mock.go -package=mock . UserRepository,PropertyRepository,ProfileRepository,CatalogRepository,PhotoStorage

// UserRepository is the credential store. It owns every persisted user row;
// the action-token protocol mutates users only through it.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetVerified flips email_verified to true and returns the number of
	// rows that actually changed (0 when already verified).
	SetVerified(ctx context.Context, userID int64) (int64, error)
	SetPasswordHash(ctx context.Context, userID int64, hash string) (int64, error)

	// SetTokenFragment overwrites the outstanding fragment; nil clears it.
	SetTokenFragment(ctx context.Context, userID int64, fragment *string) error
	GetTokenFragment(ctx context.Context, userID int64) (*string, error)

	// ConsumeTokenFragment clears the fragment only if it still equals
	// fragment, in a single statement. It reports whether it did.
	ConsumeTokenFragment(ctx context.Context, userID int64, fragment string) (bool, error)
}

// PropertyRepository persists listings and their photos.
type PropertyRepository interface {
	ListProperties(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error)
	GetProperty(ctx context.Context, propertyID int64) (models.Property, error)
	GetPropertyOwner(ctx context.Context, propertyID int64) (int64, error)
	CreateProperty(ctx context.Context, vendorUserID int64, property models.PropertyRequest) (int64, error)
	UpdateProperty(ctx context.Context, propertyID int64, update models.PropertyUpdate) (int64, error)
	DeleteProperty(ctx context.Context, propertyID int64) (int64, error)

	// AddPhotos stores photo rows in one transaction. A main photo replaces
	// the previous main photo of the property.
	AddPhotos(ctx context.Context, propertyID int64, photos []models.Photo) error
}

// ProfileRepository reads public contact cards.
type ProfileRepository interface {
	GetUserDetails(ctx context.Context, userID int64) (models.UserDetails, error)
}

// CatalogRepository reads the selectable currencies and contract types.
type CatalogRepository interface {
	GetCatalogs(ctx context.Context) (models.Catalogs, error)
}

// PhotoStorage keeps the uploaded image bytes. Save returns the public URL
// of the stored object.
type PhotoStorage interface {
	Save(ctx context.Context, key string, upload models.PhotoUpload) (string, error)
	Delete(ctx context.Context, key string) error
}
