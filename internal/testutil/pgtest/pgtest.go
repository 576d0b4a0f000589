// Package pgtest opens a migrated PostgreSQL database for integration tests.
package pgtest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/migrator"
)

// EnvDSN names the variable holding the test database DSN
const EnvDSN = "TEST_DATABASE_URL"

// lockKey serializes test packages sharing one database
const lockKey = 7_301_002

// Open connects to TEST_DATABASE_URL, applies migrations and empties every table.
// The test is skipped when the variable is not set. An advisory lock is held until
// the test ends, so packages run by `go test ./...` do not truncate each other's data.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	lockConn, err := db.Conn(ctx)
	require.NoError(t, err)
	_, err = lockConn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = lockConn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
		lockConn.Close()
	})

	_, err = migrator.New(db, migrationsDir(), testutil.NopLogger{}).Up(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `TRUNCATE appointments, time_slots, locations, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

// AddUser inserts a user and returns its id
func AddUser(t *testing.T, db *sql.DB, firstName, lastName, email string) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.QueryRowContext(context.Background(),
		`INSERT INTO users (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING id`,
		firstName, lastName, email).Scan(&id))
	return id
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}
