package main

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDatabase(t *testing.T) {
	t.Run("should return server version", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		mock.ExpectQuery(`SELECT version\(\)`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 15.4"))

		version, err := checkDatabase(context.Background(), db)

		require.NoError(t, err)
		assert.Equal(t, "PostgreSQL 15.4", version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fail when ping fails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		_, err = checkDatabase(context.Background(), db)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fail when version query fails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		mock.ExpectQuery(`SELECT version\(\)`).WillReturnError(errors.New("permission denied"))

		_, err = checkDatabase(context.Background(), db)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "query version")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
