package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worksuite/backend/internal/domain/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTenantRepository creates a GormTenantRepository with a mocked SQL connection
func newMockTenantRepository(t *testing.T) (*GormTenantRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormTenantRepository(gormDB), mock, mockDB
}

func tenantColumns() []string {
	return []string{"id", "created_at", "updated_at", "version", "code", "name", "status", "logo_url", "timezone"}
}

func TestGormTenantRepository_FindByID(t *testing.T) {
	t.Run("finds existing tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(tenantColumns()).
			AddRow(tenantID, now, now, 1, "ACME", "Acme Corp", "active", "", "Europe/Berlin")

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByID(context.Background(), tenantID)

		assert.NoError(t, err)
		require.NotNil(t, tenant)
		assert.Equal(t, tenantID, tenant.ID)
		assert.Equal(t, "ACME", tenant.Code)
		assert.True(t, tenant.IsActive())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		tenant, err := repo.FindByID(context.Background(), tenantID)

		assert.Nil(t, tenant)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_FindByCode(t *testing.T) {
	t.Run("matches code case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(tenantColumns()).
			AddRow(tenantID, now, now, 1, "ACME", "Acme Corp", "active", "", "")

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE UPPER\(code\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ACME", 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByCode(context.Background(), "acme")

		assert.NoError(t, err)
		require.NotNil(t, tenant)
		assert.Equal(t, "ACME", tenant.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_Save(t *testing.T) {
	t.Run("saves tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenant, err := identity.NewTenant("ACME", "Acme Corp")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "tenants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), tenant)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_ExistsByCode(t *testing.T) {
	t.Run("reports existing code", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tenants" WHERE UPPER\(code\) = \$1`).
			WithArgs("ACME").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "acme")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectExec(`DELETE FROM "tenants" WHERE id = \$1`).
			WithArgs(tenantID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tenantID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
