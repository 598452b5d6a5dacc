package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSNForcesFoundRows(t *testing.T) {
	dsn, err := normalizeDSN("shop:shop@tcp(localhost:3306)/shop?parseTime=true&charset=utf8mb4")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ClientFoundRows, "updates must report matched rows, not changed rows")

	// Existing parameters survive the rewrite.
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "shop", cfg.DBName)
}

func TestNormalizeDSNKeepsExplicitFoundRows(t *testing.T) {
	dsn, err := normalizeDSN("shop:shop@tcp(localhost:3306)/shop?clientFoundRows=true")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ClientFoundRows)
}

func TestNormalizeDSNRejectsGarbage(t *testing.T) {
	_, err := normalizeDSN("not a dsn at all")
	assert.Error(t, err)
}
