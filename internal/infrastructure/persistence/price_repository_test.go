package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPriceRepository creates a GormPriceRepository with a mocked SQL connection
func newMockPriceRepository(t *testing.T) (*GormPriceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPriceRepository(gormDB), mock, mockDB
}

func TestGormPriceRepository_FindProductConfigs(t *testing.T) {
	t.Run("restricts to the given channels", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		restaurantID := uuid.New()
		productID := uuid.New()
		channelID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "restaurant_id", "product_id", "branch_sales_channel_id", "is_enabled", "price"}).
			AddRow(uuid.New(), restaurantID, productID, channelID, true, "85.00")

		mock.ExpectQuery(`SELECT \* FROM "channel_price_configs" WHERE \(restaurant_id = \$1 AND product_id = \$2\) AND branch_sales_channel_id IN \(\$3\)`).
			WithArgs(restaurantID, productID, channelID).
			WillReturnRows(rows)

		configs, err := repo.FindProductConfigs(context.Background(), restaurantID, productID, []uuid.UUID{channelID})

		assert.NoError(t, err)
		require.Len(t, configs, 1)
		assert.True(t, configs[0].IsEnabled)
		require.NotNil(t, configs[0].Price)
		assert.True(t, configs[0].Price.Equal(decimal.RequireFromString("85.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceRepository_HasEnabledProductConfig(t *testing.T) {
	t.Run("true when an enabled row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		restaurantID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "channel_price_configs" WHERE restaurant_id = \$1 AND product_id = \$2 AND is_enabled = \$3`).
			WithArgs(restaurantID, productID, true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		ok, err := repo.HasEnabledProductConfig(context.Background(), restaurantID, productID)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("false when no enabled row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		restaurantID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "channel_price_configs"`).
			WithArgs(restaurantID, productID, true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.HasEnabledProductConfig(context.Background(), restaurantID, productID)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceRepository_ApplyProductWrites(t *testing.T) {
	t.Run("applies removal and update in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		restaurantID := uuid.New()
		productID := uuid.New()
		removeChannelID := uuid.New()
		updateChannelID := uuid.New()
		existingID := uuid.New()
		price := decimal.RequireFromString("90.00")

		mock.ExpectBegin()

		mock.ExpectExec(`DELETE FROM "channel_price_configs" WHERE product_id = \$1 AND branch_sales_channel_id = \$2`).
			WithArgs(productID, removeChannelID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`SELECT \* FROM "channel_price_configs" WHERE product_id = \$1 AND branch_sales_channel_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(productID, updateChannelID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "product_id", "branch_sales_channel_id", "is_enabled", "price"}).
				AddRow(existingID, restaurantID, productID, updateChannelID, true, "85.00"))

		mock.ExpectExec(`UPDATE "channel_price_configs" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		err := repo.ApplyProductWrites(context.Background(), restaurantID, productID, []channel.PriceWrite{
			{BranchSalesChannelID: removeChannelID, Remove: true},
			{BranchSalesChannelID: updateChannelID, IsEnabled: true, Price: &price},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the whole batch when a later entry fails", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		restaurantID := uuid.New()
		productID := uuid.New()
		removeChannelID := uuid.New()
		failingChannelID := uuid.New()
		price := decimal.RequireFromString("90.00")

		mock.ExpectBegin()

		mock.ExpectExec(`DELETE FROM "channel_price_configs" WHERE product_id = \$1 AND branch_sales_channel_id = \$2`).
			WithArgs(productID, removeChannelID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`SELECT \* FROM "channel_price_configs" WHERE product_id = \$1 AND branch_sales_channel_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(productID, failingChannelID, 1).
			WillReturnError(assert.AnError)

		mock.ExpectRollback()

		err := repo.ApplyProductWrites(context.Background(), restaurantID, productID, []channel.PriceWrite{
			{BranchSalesChannelID: removeChannelID, Remove: true},
			{BranchSalesChannelID: failingChannelID, IsEnabled: true, Price: &price},
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no-op for empty batch", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceRepository(t)
		defer mockDB.Close()

		err := repo.ApplyProductWrites(context.Background(), uuid.New(), uuid.New(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
