package psql_test

import (
	"context"
	"errors"
	"testing"

	"notes/notes/sources/psql"
	"notes/notes/sources/psql/models"
	"notes/notes/sources/psql/psqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateSchemaIsIdempotent(t *testing.T) {
	db := psqltest.NewDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.DB.Create(&models.Note{Text: "keep me", Completed: true}).Error)
	require.NoError(t, db.CreateSchema(ctx))
	require.NoError(t, db.CreateSchema(ctx))

	var notes []models.Note
	require.NoError(t, db.DB.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, "keep me", notes[0].Text)

	columns, err := db.DB.Migrator().ColumnTypes(&models.Note{})
	require.NoError(t, err)
	assert.Len(t, columns, 3)
}

func TestOpenBoundsPool(t *testing.T) {
	db := psqltest.NewDatabase(t)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

type failingDialector struct {
	gorm.Dialector
}

func (failingDialector) Name() string { return "failing" }

func (failingDialector) Initialize(*gorm.DB) error {
	return errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")
}

func TestOpenWrapsConnectionError(t *testing.T) {
	_, err := psql.Open(context.Background(), failingDialector{}, psql.Options{PoolSize: 3})

	var cerr *psql.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "connection refused")
}
