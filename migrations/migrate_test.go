// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NilDB(t *testing.T) {
	_, err := Migrate(context.Background(), nil)

	assert.ErrorIs(t, err, errNilDB)
}

// goose hits an unexpected statement on the mock and fails.
func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestEmbeddedMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	provider, err := newProvider(db)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.NotEmpty(t, sources)
	assert.EqualValues(t, 1, sources[0].Version)
	for i := 1; i < len(sources); i++ {
		assert.Greater(t, sources[i].Version, sources[i-1].Version)
	}

	schema, err := embedMigrations.ReadFile("00001_init_schema.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "properties", "photos", "token_fragment"} {
		assert.Contains(t, string(schema), table)
	}
}
