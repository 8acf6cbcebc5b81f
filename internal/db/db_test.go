package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	d := NewTestDB(t)

	for _, table := range []string{"kv", "settings", "messages", "revoked_tokens"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d := NewTestDB(t)
	assert.NoError(t, Migrate(d))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := "SELECT value FROM kv WHERE key = ? AND value <> ?"

	sqlite := &DB{Driver: DriverSQLite}
	assert.Equal(t, q, sqlite.Rebind(q))

	pg := &DB{Driver: DriverPostgres}
	assert.Equal(t, "SELECT value FROM kv WHERE key = $1 AND value <> $2", pg.Rebind(q))
}
