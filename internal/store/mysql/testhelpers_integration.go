//go:build integration

package mysql

import (
	"context"
	"database/sql"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

func setupMySQLContainer(t require.TestingT, ctx context.Context) (string, func()) {
	const (
		dbName = "lumen_park_test"
		user   = "testuser"
		pass   = "testpass"
	)

	container, err := tcmysql.RunContainer(
		ctx,
		tcmysql.WithDatabase(dbName),
		tcmysql.WithUsername(user),
		tcmysql.WithPassword(pass),
	)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	require.NoError(t, err)

	dsn := user + ":" + pass + "@tcp(" + host + ":" + port.Port() + ")/" + dbName + "?parseTime=true&loc=UTC&multiStatements=true"

	dbConn, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer dbConn.Close()

	_, err = dbConn.ExecContext(ctx, Schema)
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return dsn, cleanup
}
