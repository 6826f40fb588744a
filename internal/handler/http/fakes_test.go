package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/validators"
	"github.com/MKhiriev/fast-home/models"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type fakeAuthService struct {
	registerFn  func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn     func(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	authorizeFn func(ctx context.Context, header string) (models.Principal, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) Authorize(ctx context.Context, header string) (models.Principal, error) {
	if f.authorizeFn == nil {
		return models.Principal{}, service.ErrForbidden
	}
	return f.authorizeFn(ctx, header)
}

type fakeActionTokenService struct {
	beginVerificationFn    func(ctx context.Context, username string) (string, error)
	beginResetFn           func(ctx context.Context, email string) (string, error)
	completeVerificationFn func(ctx context.Context, rawToken string) error
	completeResetFn        func(ctx context.Context, rawToken, newPassword string) error
}

func (f *fakeActionTokenService) BeginVerification(ctx context.Context, username string) (string, error) {
	return f.beginVerificationFn(ctx, username)
}

func (f *fakeActionTokenService) BeginReset(ctx context.Context, email string) (string, error) {
	return f.beginResetFn(ctx, email)
}

func (f *fakeActionTokenService) CompleteVerification(ctx context.Context, rawToken string) error {
	return f.completeVerificationFn(ctx, rawToken)
}

func (f *fakeActionTokenService) CompleteReset(ctx context.Context, rawToken, newPassword string) error {
	return f.completeResetFn(ctx, rawToken, newPassword)
}

type fakePropertyService struct {
	listFn      func(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error)
	getFn       func(ctx context.Context, propertyID int64) (models.Property, error)
	createFn    func(ctx context.Context, userID int64, req models.PropertyRequest) (int64, error)
	updateFn    func(ctx context.Context, userID, propertyID int64, update models.PropertyUpdate) error
	deleteFn    func(ctx context.Context, userID, propertyID int64) error
	addPhotosFn func(ctx context.Context, userID, propertyID int64, main *models.PhotoUpload, photos []models.PhotoUpload) ([]models.Photo, error)
}

func (f *fakePropertyService) ListProperties(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error) {
	return f.listFn(ctx, filters)
}

func (f *fakePropertyService) GetProperty(ctx context.Context, propertyID int64) (models.Property, error) {
	return f.getFn(ctx, propertyID)
}

func (f *fakePropertyService) CreateProperty(ctx context.Context, userID int64, req models.PropertyRequest) (int64, error) {
	return f.createFn(ctx, userID, req)
}

func (f *fakePropertyService) UpdateProperty(ctx context.Context, userID, propertyID int64, update models.PropertyUpdate) error {
	return f.updateFn(ctx, userID, propertyID, update)
}

func (f *fakePropertyService) DeleteProperty(ctx context.Context, userID, propertyID int64) error {
	return f.deleteFn(ctx, userID, propertyID)
}

func (f *fakePropertyService) AddPhotos(ctx context.Context, userID, propertyID int64, main *models.PhotoUpload, photos []models.PhotoUpload) ([]models.Photo, error) {
	return f.addPhotosFn(ctx, userID, propertyID, main, photos)
}

type fakeProfileService struct {
	detailsFn func(ctx context.Context, userID int64) (models.UserDetails, error)
	ownFn     func(ctx context.Context, userID int64, filters models.PropertyFilters) ([]models.BasicProperty, error)
}

func (f *fakeProfileService) GetUserDetails(ctx context.Context, userID int64) (models.UserDetails, error) {
	return f.detailsFn(ctx, userID)
}

func (f *fakeProfileService) ListOwnProperties(ctx context.Context, userID int64, filters models.PropertyFilters) ([]models.BasicProperty, error) {
	return f.ownFn(ctx, userID, filters)
}

type fakeCatalogService struct {
	catalogs models.Catalogs
	err      error
}

func (f *fakeCatalogService) GetCatalogs(context.Context) (models.Catalogs, error) {
	return f.catalogs, f.err
}

type fakeAppInfoService struct {
	info models.BuildInfo
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.info.Version
}

func (f *fakeAppInfoService) GetBuildInfo(context.Context) models.BuildInfo {
	return f.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// sessionHeader is accepted by authorizeAs.
const sessionHeader = "Bearer session-token"

// authorizeAs returns an Authorize func that accepts sessionHeader as userID.
func authorizeAs(userID int64) func(context.Context, string) (models.Principal, error) {
	return func(_ context.Context, header string) (models.Principal, error) {
		if header != sessionHeader {
			return models.Principal{}, service.ErrForbidden
		}
		return models.Principal{UserID: userID}, nil
	}
}

// newTestServices fills every service with a fake so that routes never hit
// a nil interface. Tests override the parts they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:        &fakeAuthService{},
		ActionTokenService: &fakeActionTokenService{},
		PropertyService:    &fakePropertyService{},
		ProfileService:     &fakeProfileService{},
		CatalogService:     &fakeCatalogService{},
		AppInfoService:     &fakeAppInfoService{info: models.BuildInfo{Version: "test-version"}},
	}
}

func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	cfg := config.StructuredConfig{
		Server:  config.Server{MaxUploadBytes: 1 << 20},
		Storage: config.Storage{Photos: config.Photos{Dir: t.TempDir()}},
	}
	return NewHandler(services, validators.NewValidator(), cfg, logger.Nop())
}
