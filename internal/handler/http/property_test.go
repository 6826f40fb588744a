package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// GET /api/properties
// ─────────────────────────────────────────────

func TestListProperties_Filters(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantFilters models.PropertyFilters
		wantInvalid []string
	}{
		{name: "no filters", query: "", wantStatus: http.StatusOK},
		{
			name:        "all filters",
			query:       "?bedrooms=5&bathrooms=6&garage=4&floors=3&currency=2&order=price_desc",
			wantStatus:  http.StatusOK,
			wantFilters: models.PropertyFilters{Bedrooms: 5, Bathrooms: 6, Garage: 4, Floors: 3, Currency: 2, Order: models.SortPriceDesc},
		},
		{name: "not a number", query: "?bedrooms=two&floors=x", wantStatus: http.StatusBadRequest, wantInvalid: []string{"bedrooms", "floors"}},
		{name: "out of range", query: "?bathrooms=7", wantStatus: http.StatusBadRequest, wantInvalid: []string{"bathrooms"}},
		{name: "unknown order", query: "?order=cheapest", wantStatus: http.StatusBadRequest, wantInvalid: []string{"order"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			var got models.PropertyFilters
			services.PropertyService = &fakePropertyService{
				listFn: func(_ context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error) {
					got = filters
					return []models.BasicProperty{}, nil
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodGet, "/api/properties"+tt.query, "", nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantFilters, got)
				assert.JSONEq(t, `[]`, rec.Body.String())
				return
			}
			invalid, _ := decodeValidation(t, rec)
			assert.ElementsMatch(t, tt.wantInvalid, invalid)
		})
	}
}

// ─────────────────────────────────────────────
// GET /api/property/{id}
// ─────────────────────────────────────────────

func TestGetProperty(t *testing.T) {
	services := newTestServices()
	services.PropertyService = &fakePropertyService{
		getFn: func(_ context.Context, id int64) (models.Property, error) {
			if id != 7 {
				return models.Property{}, fmt.Errorf("error getting property: %w", store.ErrPropertyNotFound)
			}
			return models.Property{PropertyID: 7, Address: "158 Main Street", Photos: []models.Photo{}}, nil
		},
	}
	h := newTestHandler(t, services)

	rec := serve(h, http.MethodGet, "/api/property/7", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "158 Main Street", got.Address)

	rec = serve(h, http.MethodGet, "/api/property/8", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/api/property/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	invalid, _ := decodeValidation(t, rec)
	assert.Equal(t, []string{"id"}, invalid)
}

// ─────────────────────────────────────────────
// POST /api/property
// ─────────────────────────────────────────────

func TestCreateProperty(t *testing.T) {
	body := `{
	  "address": "158 Main Street",
	  "description": "lol",
	  "price": 8500,
	  "latitude": 28.661655,
	  "longitude": -106.040184,
	  "terrainHeight": 11,
	  "terrainWidth": 12,
	  "bedroomAmount": 1,
	  "bathroomAmount": 1,
	  "floorAmount": 1,
	  "garageSize": 1,
	  "contractType": 1,
	  "currencyId": 1
	}`

	services := newTestServices()
	services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}
	services.PropertyService = &fakePropertyService{
		createFn: func(_ context.Context, userID int64, req models.PropertyRequest) (int64, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, 8500.0, req.Price)
			return 15, nil
		},
	}
	h := newTestHandler(t, services)

	rec := serve(h, http.MethodPost, "/api/property", body, map[string]string{"Authorization": sessionHeader})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":15}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/property", `{"address":"x","latitude":123}`, map[string]string{"Authorization": sessionHeader})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	invalid, missing := decodeValidation(t, rec)
	assert.Contains(t, invalid, "latitude")
	assert.Contains(t, missing, "price")
}

// ─────────────────────────────────────────────
// PUT / DELETE /api/property/{id}
// ─────────────────────────────────────────────

func TestUpdateProperty(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantStatus int
	}{
		{"partial update", `{"price":780000,"description":"New description"}`, nil, http.StatusNoContent},
		{"not owner", `{"price":780000}`, service.ErrNotOwner, http.StatusForbidden},
		{"absent", `{"price":780000}`, store.ErrPropertyNotFound, http.StatusNotFound},
		{"empty", `{}`, service.ErrEmptyUpdate, http.StatusBadRequest},
		{"invalid latitude", `{"latitude":-128.15}`, nil, http.StatusBadRequest},
		{"unknown currency", `{"currencyId":99}`, store.ErrUnknownReference, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}
			services.PropertyService = &fakePropertyService{
				updateFn: func(_ context.Context, userID, propertyID int64, _ models.PropertyUpdate) error {
					assert.Equal(t, int64(42), userID)
					assert.Equal(t, int64(3), propertyID)
					return tt.updateErr
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodPut, "/api/property/3", tt.body,
				map[string]string{"Authorization": sessionHeader})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not owner", service.ErrNotOwner, http.StatusForbidden},
		{"absent", fmt.Errorf("error getting property owner: %w", store.ErrPropertyNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}
			services.PropertyService = &fakePropertyService{
				deleteFn: func(context.Context, int64, int64) error { return tt.deleteErr },
			}

			rec := serve(newTestHandler(t, services), http.MethodDelete, "/api/property/3", "",
				map[string]string{"Authorization": sessionHeader})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// POST /api/property/{id}/images
// ─────────────────────────────────────────────

type formFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		if f.contentType != "" {
			header.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n0000")

func uploadPhotos(t *testing.T, h *Handler, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files...)
	req := httptest.NewRequest(http.MethodPost, "/api/property/3/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", sessionHeader)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func TestAddPhotos(t *testing.T) {
	services := newTestServices()
	services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}
	services.PropertyService = &fakePropertyService{
		addPhotosFn: func(_ context.Context, userID, propertyID int64, main *models.PhotoUpload, photos []models.PhotoUpload) ([]models.Photo, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, int64(3), propertyID)
			require.NotNil(t, main)
			assert.Equal(t, "front.jpg", main.FileName)
			assert.Equal(t, "image/jpeg", main.ContentType)
			require.Len(t, photos, 1)
			// No declared type: sniffed from the content.
			assert.Equal(t, "image/png", photos[0].ContentType)
			assert.Equal(t, int64(len(pngMagic)), photos[0].Size)
			return []models.Photo{{URL: "/photos/a.jpg", IsMain: true}, {URL: "/photos/b.png"}}, nil
		},
	}

	rec := uploadPhotos(t, newTestHandler(t, services),
		formFile{"main", "front.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}},
		formFile{"photos", "yard", "", pngMagic},
	)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `[{"url":"/photos/a.jpg","description":null},{"url":"/photos/b.png","description":null}]`, rec.Body.String())
}

func TestAddPhotos_Rejections(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}

	t.Run("two main photos", func(t *testing.T) {
		services := newTestServices()
		services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}

		rec := uploadPhotos(t, newTestHandler(t, services),
			formFile{"main", "a.jpg", "image/jpeg", jpeg},
			formFile{"main", "b.jpg", "image/jpeg", jpeg},
		)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		invalid, _ := decodeValidation(t, rec)
		assert.Equal(t, []string{"main"}, invalid)
	})

	t.Run("six photos", func(t *testing.T) {
		services := newTestServices()
		services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}

		files := make([]formFile, 6)
		for i := range files {
			files[i] = formFile{"photos", fmt.Sprintf("%d.jpg", i), "image/jpeg", jpeg}
		}
		rec := uploadPhotos(t, newTestHandler(t, services), files...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not owner", func(t *testing.T) {
		services := newTestServices()
		services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}
		services.PropertyService = &fakePropertyService{
			addPhotosFn: func(context.Context, int64, int64, *models.PhotoUpload, []models.PhotoUpload) ([]models.Photo, error) {
				return nil, service.ErrNotOwner
			},
		}

		rec := uploadPhotos(t, newTestHandler(t, services), formFile{"main", "a.jpg", "image/jpeg", jpeg})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		services := newTestServices()
		services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}

		rec := serve(newTestHandler(t, services), http.MethodPost, "/api/property/3/images", `{}`,
			map[string]string{"Authorization": sessionHeader})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		services := newTestServices()
		services.AuthService = &fakeAuthService{authorizeFn: authorizeAs(42)}

		rec := uploadPhotos(t, newTestHandler(t, services),
			formFile{"main", "huge.jpg", "image/jpeg", bytes.Repeat([]byte{0xff}, 2<<20)})
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
