package persistence

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	// GORM pings once while opening.
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock
}

func TestDatabase_Ping(t *testing.T) {
	db, mock := newMockDatabase(t)
	defer db.Close()

	mock.ExpectPing()

	require.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Ping_ConnectionLost(t *testing.T) {
	db, mock := newMockDatabase(t)
	defer db.Close()

	mock.ExpectPing().WillReturnError(assert.AnError)

	assert.Error(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectClose()

	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Stats(t *testing.T) {
	db, _ := newMockDatabase(t)
	defer db.Close()

	stats, err := db.Stats()
	require.NoError(t, err)

	// sqlmock keeps a single open connection around, so the pool counters
	// must at least be self-consistent.
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
	assert.GreaterOrEqual(t, stats.WaitCount, int64(0))
	assert.GreaterOrEqual(t, stats.WaitDuration, time.Duration(0))
}

func TestDatabase_QueriesRunThroughPool(t *testing.T) {
	db, mock := newMockDatabase(t)
	defer db.Close()

	type product struct {
		ID           uint
		RestaurantID string
		Name         string
	}

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE restaurant_id = \$1`).
		WithArgs("restaurant-123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name"}).
			AddRow(1, "restaurant-123", "Margherita"))

	var results []product
	err := db.DB.Where("restaurant_id = ?", "restaurant-123").Find(&results).Error
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Margherita", results[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
