//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPnrlensWithMySQL tests the pnrlens CLI with a MySQL backend.
func TestPnrlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "pnrlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/pnrlens?parseTime=true", host, port.Port())

	setBackendEnv(t, "mysql", connStr)

	// Run pnrlens cache clear
	err = runCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run pnrlens history clear
	err = runCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run pnrlens history migrate (to latest)
	err = runCommand(t, "history", "migrate")
	require.NoError(t, err)

	// Run pnrlens cache status
	err = runCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run pnrlens history status
	err = runCommand(t, "history", "status")
	require.NoError(t, err)
}

// TestPnrlensWithPostgres tests the pnrlens CLI with a PostgreSQL backend.
func TestPnrlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	setBackendEnv(t, "postgresql", connStr)

	// Run pnrlens cache clear
	err = runCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run pnrlens history clear
	err = runCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run pnrlens history migrate (to latest)
	err = runCommand(t, "history", "migrate")
	require.NoError(t, err)

	// Run pnrlens cache status
	err = runCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run pnrlens history status
	err = runCommand(t, "history", "status")
	require.NoError(t, err)
}

// setBackendEnv points both stores at the given backend for the
// duration of one test.
func setBackendEnv(t *testing.T, backend, connStr string) {
	t.Helper()
	_ = os.Setenv("PNRLENS_CACHE_BACKEND", backend)
	_ = os.Setenv("PNRLENS_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("PNRLENS_HISTORY_BACKEND", backend)
	_ = os.Setenv("PNRLENS_HISTORY_DB_CONNECT", connStr)
	t.Cleanup(func() {
		_ = os.Unsetenv("PNRLENS_CACHE_BACKEND")
		_ = os.Unsetenv("PNRLENS_CACHE_DB_CONNECT")
		_ = os.Unsetenv("PNRLENS_HISTORY_BACKEND")
		_ = os.Unsetenv("PNRLENS_HISTORY_DB_CONNECT")
	})
}
