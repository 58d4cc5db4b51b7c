package postgres

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/pkg/apperrors"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addressRowColumns = []string{"id", "customer_id", "line1", "line2", "city", "state", "pincode", "country", "is_primary", "created_at", "updated_at"}

func setupAddressRepo(t *testing.T) (context.Context, *AddressRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewAddressRepository(mockPool, logger), mockPool
}

func newTestAddress(primary bool) *address.Address {
	city := "Pune"
	return &address.Address{
		ID:         "addr-1",
		CustomerID: "cust-1",
		Line1:      "12 MG Road",
		City:       &city,
		Country:    address.DefaultCountry,
		IsPrimary:  primary,
	}
}

func expectInsertAddress(mockPool pgxmock.PgxPoolIface, a *address.Address) {
	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(insertAddressQuery)).
		WithArgs(a.ID, a.CustomerID, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.Country, a.IsPrimary).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
}

func TestAddressCreate_PrimaryDemotesSiblingsFirst(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	addr := newTestAddress(true)

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(demoteSiblingsQuery)).
		WithArgs("cust-1", "addr-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	expectInsertAddress(mockPool, addr)
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectCommit()

	err := repo.Create(ctx, addr)

	assert.NoError(t, err)
	assert.True(t, addr.IsPrimary)
	assert.False(t, addr.CreatedAt.IsZero())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressCreate_FirstAddressIsPromoted(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	addr := newTestAddress(false)

	mockPool.ExpectBegin()
	expectInsertAddress(mockPool, addr)
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	err := repo.Create(ctx, addr)

	assert.NoError(t, err)
	assert.True(t, addr.IsPrimary, "a customer's only address must be primary")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressCreate_DemoteFailureRollsBack(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(demoteSiblingsQuery)).
		WithArgs("cust-1", "addr-1").
		WillReturnError(errors.New("lock timeout"))
	mockPool.ExpectRollback()

	err := repo.Create(ctx, newTestAddress(true))

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressCreate_UnknownCustomer(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	addr := newTestAddress(false)

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(insertAddressQuery)).
		WithArgs(addr.ID, addr.CustomerID, addr.Line1, addr.Line2, addr.City, addr.State, addr.Pincode, addr.Country, addr.IsPrimary).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraintAddressCustomer})
	mockPool.ExpectRollback()

	err := repo.Create(ctx, addr)

	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressUpdate_SetPrimary(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	primary := true
	line1 := " 7 Park Street "

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(addressOwnerQuery)).
		WithArgs("addr-2").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust-1"))
	mockPool.ExpectExec(regexp.QuoteMeta(demoteSiblingsQuery)).
		WithArgs("cust-1", "addr-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET line1 = TRIM($1), is_primary = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs(line1, true, "addr-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectCommit()

	err := repo.Update(ctx, "addr-2", address.Input{Line1: &line1, IsPrimary: &primary})

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressUpdate_WithoutPrimaryFlagSkipsDemotion(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	city := "Chennai"
	country := ""

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(addressOwnerQuery)).
		WithArgs("addr-2").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust-1"))
	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET city = NULLIF(TRIM($1), ''), country = COALESCE(NULLIF(TRIM($2), ''), 'India'), updated_at = NOW() WHERE id = $3")).
		WithArgs(city, country, "addr-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectCommit()

	err := repo.Update(ctx, "addr-2", address.Input{City: &city, Country: &country})

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressUpdate_NotFound(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	city := "Chennai"

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(addressOwnerQuery)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectRollback()

	err := repo.Update(ctx, "missing", address.Input{City: &city})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressUpdate_NoFields(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	assert.ErrorIs(t, repo.Update(ctx, "addr-1", address.Input{}), apperrors.ErrNoFields)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressDelete_PromotesSoleSurvivor(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(deleteAddressQuery)).
		WithArgs("addr-1").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust-1"))
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	assert.NoError(t, repo.Delete(ctx, "addr-1"))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressDelete_NotFound(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(deleteAddressQuery)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressDelete_PromotionFailureFailsDelete(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(deleteAddressQuery)).
		WithArgs("addr-1").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust-1"))
	mockPool.ExpectExec(regexp.QuoteMeta(promoteSoleAddressQuery)).
		WithArgs("cust-1").
		WillReturnError(errors.New("disk full"))
	mockPool.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(ctx, "addr-1"), apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressListByCustomer(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()
	now := time.Now()
	city := "Pune"

	mockPool.ExpectQuery(regexp.QuoteMeta(listAddressesQuery)).
		WithArgs("cust-1").
		WillReturnRows(pgxmock.NewRows(addressRowColumns).
			AddRow("a-1", "cust-1", "12 MG Road", (*string)(nil), &city, (*string)(nil), (*string)(nil), "India", true, now, now).
			AddRow("a-2", "cust-1", "4 Lake View", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), "India", false, now, now))

	addrs, err := repo.ListByCustomer(ctx, "cust-1")

	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.True(t, addrs[0].IsPrimary)
	assert.Equal(t, "Pune", *addrs[0].City)
	assert.Nil(t, addrs[1].City)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressCustomerExists(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(customerExistsQuery)).
		WithArgs("cust-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.CustomerExists(ctx, "cust-1")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressRepairPrimaryFlags(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(repairExtraPrimariesQuery)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mockPool.ExpectExec(regexp.QuoteMeta(repairSoleAddressesQuery)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mockPool.ExpectCommit()

	changed, err := repo.RepairPrimaryFlags(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), changed)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddressAssignments(t *testing.T) {
	line2 := ""
	pincode := "411001"
	primary := false

	sets, args := addressAssignments(address.Input{Line2: &line2, Pincode: &pincode, IsPrimary: &primary})

	assert.Equal(t, []string{
		"line2 = NULLIF(TRIM($1), '')",
		"pincode = NULLIF(TRIM($2), '')",
		"is_primary = $3",
	}, sets)
	assert.Equal(t, []any{"", "411001", false}, args)
}
