package migration

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type thing struct {
	ID   uint
	Name string
}

type createThings struct{}

func (createThings) Up(db *gorm.DB) error   { return db.AutoMigrate(&thing{}) }
func (createThings) Down(db *gorm.DB) error { return db.Migrator().DropTable(&thing{}) }

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("boom") }
func (failing) Down(*gorm.DB) error { return nil }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestRunAndRollback(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer
	r := NewWith(db, &out, []Entry{{Name: "20240101000000_create_things", Migration: createThings{}}})

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&thing{}))
	assert.Contains(t, out.String(), "Migrated:  20240101000000_create_things")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&thing{}))

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRollbackWithNothingRun(t *testing.T) {
	var out bytes.Buffer
	r := NewWith(openDB(t), &out, nil)

	require.NoError(t, r.Rollback())
	assert.Contains(t, out.String(), "Nothing to roll back.")
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := openDB(t)
	r := NewWith(db, nil, []Entry{
		{Name: "2_fail", Migration: failing{}},
		{Name: "1_things", Migration: createThings{}},
	})

	assert.Error(t, r.Run())

	pending, err := r.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2_fail", pending[0].Name)
}

func TestStatus(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer
	r := NewWith(db, &out, []Entry{{Name: "1_things", Migration: createThings{}}})

	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Pending")

	require.NoError(t, r.Run())
	out.Reset()
	require.NoError(t, r.Status())
	assert.Regexp(t, `1_things\s+Ran\s+1`, out.String())
}
