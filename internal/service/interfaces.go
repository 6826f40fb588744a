package service

import (
	"context"
	"time"

	"github.com/MKhiriev/fast-home/internal/token"
	"github.com/MKhiriev/fast-home/models"
)

// AuthService registers accounts, logs users in and guards protected
// routes.
type AuthService interface {
	// Register creates an unverified account and starts email verification.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login checks credentials of a verified account and mints a session
	// token.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// Authorize turns an Authorization header value into the principal it
	// authenticates.
	Authorize(ctx context.Context, header string) (models.Principal, error)
}

// ActionTokenService implements the single-use, purpose-scoped token flows
// for email verification and password reset.
type ActionTokenService interface {
	// BeginVerification mails a verification link to the user named
	// username and returns the link.
	BeginVerification(ctx context.Context, username string) (string, error)

	// BeginReset mails a password reset link to the owner of email and
	// returns the link.
	BeginReset(ctx context.Context, email string) (string, error)

	// CompleteVerification marks the token's subject as verified.
	CompleteVerification(ctx context.Context, rawToken string) error

	// CompleteReset replaces the password of the token's subject.
	CompleteReset(ctx context.Context, rawToken, newPassword string) error
}

// PropertyService manages listings and their photos. Mutations require the
// caller to own the property.
type PropertyService interface {
	ListProperties(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error)
	GetProperty(ctx context.Context, propertyID int64) (models.Property, error)
	CreateProperty(ctx context.Context, userID int64, req models.PropertyRequest) (int64, error)
	UpdateProperty(ctx context.Context, userID, propertyID int64, update models.PropertyUpdate) error
	DeleteProperty(ctx context.Context, userID, propertyID int64) error

	// AddPhotos stores main (optional) and photos, then attaches them to
	// the property. A new main photo replaces the previous one.
	AddPhotos(ctx context.Context, userID, propertyID int64, main *models.PhotoUpload, photos []models.PhotoUpload) ([]models.Photo, error)
}

// ProfileService serves profile pages.
type ProfileService interface {
	GetUserDetails(ctx context.Context, userID int64) (models.UserDetails, error)
	ListOwnProperties(ctx context.Context, userID int64, filters models.PropertyFilters) ([]models.BasicProperty, error)
}

// CatalogService lists the selectable currencies and contract types.
type CatalogService interface {
	GetCatalogs(ctx context.Context) (models.Catalogs, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfo
}

// TokenCodec mints and verifies signed tokens. [*token.Codec] implements it.
type TokenCodec interface {
	Mint(subjectID int64, purpose token.Purpose, ttl time.Duration) (string, error)
	Verify(raw string) (token.Claims, error)
}
