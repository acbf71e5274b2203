package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine/backoffice/pkg/metrics"
)

type note struct {
	ID   uint
	Body string
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)

	for _, d := range []string{"sqlite", "postgres", "mysql", "sqlserver"} {
		dial, err := Dialector(d, "dsn")
		require.NoError(t, err, d)
		assert.NotNil(t, dial)
	}
}

func TestOpenSQLiteRecordsQueryMetrics(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))

	require.NoError(t, db.Create(&note{Body: "hi"}).Error)

	var got note
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "hi", got.Body)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.DBQueryDuration, "backoffice_db_query_duration_seconds"), 2)
}
