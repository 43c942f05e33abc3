package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSellerRepository creates a GormSellerRepository with a mocked SQL connection
func newMockSellerRepository(t *testing.T) (*GormSellerRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSellerRepository(gormDB), mock, mockDB
}

func TestNewGormSellerRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormSellerRepository_FindByID(t *testing.T) {
	t.Run("finds existing seller", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "login", "password_hash", "name", "balance", "status", "failed_attempts"}).
			AddRow(sellerID, "akmal", "$2a$12$hash", "Akmal Karimov", decimal.NewFromInt(5000), "active", 0)

		mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(sellerID, 1).
			WillReturnRows(rows)

		seller, err := repo.FindByID(context.Background(), sellerID)

		assert.NoError(t, err)
		assert.NotNil(t, seller)
		assert.Equal(t, sellerID, seller.ID)
		assert.Equal(t, "akmal", seller.Login)
		assert.True(t, seller.Balance.Equal(decimal.NewFromInt(5000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing seller", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(sellerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		seller, err := repo.FindByID(context.Background(), sellerID)

		assert.Error(t, err)
		assert.Nil(t, seller)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSellerRepository_FindByLogin(t *testing.T) {
	t.Run("finds seller by login", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "login", "password_hash", "name", "status"}).
			AddRow(sellerID, "akmal", "$2a$12$hash", "Akmal Karimov", "active")

		mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE login = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("akmal", 1).
			WillReturnRows(rows)

		seller, err := repo.FindByLogin(context.Background(), "akmal")

		assert.NoError(t, err)
		assert.Equal(t, "akmal", seller.Login)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lowercases login before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "login", "password_hash", "name", "status"}).
			AddRow(sellerID, "akmal", "$2a$12$hash", "Akmal Karimov", "active")

		mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE login = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("akmal", 1).
			WillReturnRows(rows)

		seller, err := repo.FindByLogin(context.Background(), "AKMAL")

		assert.NoError(t, err)
		assert.NotNil(t, seller)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSellerRepository_ExistsByLogin(t *testing.T) {
	t.Run("returns true when login taken", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sellers" WHERE login = \$1`).
			WithArgs("akmal").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByLogin(context.Background(), "akmal")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when login free", func(t *testing.T) {
		repo, mock, mockDB := newMockSellerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sellers" WHERE login = \$1`).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByLogin(context.Background(), "nobody")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
