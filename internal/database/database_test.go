package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scholarvault/scholarvault/internal/testutil"
)

func TestConnect_UnknownDriver(t *testing.T) {
	cfg := Config{
		Driver:             "oracle",
		ConnectionString:   "oracle://nope",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestConnect_Postgres(t *testing.T) {
	cfg := Config{
		Driver:             "postgres",
		ConnectionString:   testutil.GetPostgresTestDSN(),
		MaxOpenConnections: 5,
		MaxIdleConnections: 2,
		ConnMaxLifetime:    time.Minute,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Skipf("postgres test database unavailable: %v", err)
	}
	defer testutil.TeardownDB(t, db)

	assert.NoError(t, db.Ping())
}
