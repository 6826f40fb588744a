package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestGetAppVersion(t *testing.T) {
	for _, version := range []string{"1.0.0", "dev", "v1.2.3-beta+build.42"} {
		t.Run(version, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: version}, models.AppBuildInfo{}, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestGetBuildInfo(t *testing.T) {
	tests := []struct {
		name  string
		build models.AppBuildInfo
		want  models.BuildInfo
	}{
		{
			name:  "linker flags set",
			build: models.NewAppBuildInfo("v1.4.0", "2026-03-01", "9f1c2ab"),
			want:  models.BuildInfo{Version: "1.4.0", BuildVersion: "v1.4.0", BuildDate: "2026-03-01", BuildCommit: "9f1c2ab"},
		},
		{
			name:  "partial build info",
			build: models.NewAppBuildInfo("v1.4.0", "2026-03-01", ""),
			want:  models.BuildInfo{Version: "1.4.0", BuildVersion: "v1.4.0", BuildDate: "2026-03-01", BuildCommit: "N/A"},
		},
		{
			name:  "go run",
			build: models.NewAppBuildInfo("", "", ""),
			want:  models.BuildInfo{Version: "1.4.0", BuildVersion: "N/A", BuildDate: "N/A", BuildCommit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, tt.build, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.GetBuildInfo(context.Background()))
		})
	}
}
