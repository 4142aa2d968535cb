package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsBadDSN(t *testing.T) {
	_, err := Connect(context.Background(), "")
	assert.Error(t, err)

	_, err = Connect(context.Background(), "postgres://%zz")
	assert.ErrorContains(t, err, "parse dsn")
}

func TestConnect(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := Connect(context.Background(), dsn)
	require.NoError(t, err)
	defer pool.Close()

	var name string
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT current_setting('application_name')`).Scan(&name))
	assert.NotEmpty(t, name)
}
