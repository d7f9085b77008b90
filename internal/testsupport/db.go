//go:build integration

// Package testsupport spins up throwaway MySQL containers for integration
// tests. Build-tagged so plain `go test ./...` needs no Docker daemon.
package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenMySQL starts a MySQL container and returns a connected *gorm.DB. The
// container is terminated when the test finishes. Callers run their own
// migrations.
func OpenMySQL(t *testing.T) *gorm.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("folio_test"),
		tcmysql.WithUsername("folio"),
		tcmysql.WithPassword("folio"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start mysql container")

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "charset=utf8mb4")
	require.NoError(t, err, "resolve container dsn")

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		DSN:               dsn,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "connect gorm")
	return db
}
