package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"customers_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerRowColumns = []string{"id", "created", "updated", "full_name", "email", "phone", "is_active"}

func newMockRepository(t *testing.T) (CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewCustomerRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func strPtr(s string) *string { return &s }

func TestCustomerRepository_Insert(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (created, updated, full_name, email, phone, is_active)")).
		WithArgs(int64(1000), int64(0), "Jane Doe", "jane@x.com", "+123456", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	in := &models.Customer{Created: 1000, FullName: "Jane Doe", Email: "jane@x.com", Phone: strPtr("+123456"), IsActive: true}
	got, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, int64(0), in.ID, "input record must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Insert_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value", Constraint: "customers_email_key"})

	_, err := repo.Insert(context.Background(), &models.Customer{FullName: "Jane Doe", Email: "jane@x.com", IsActive: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Contains(t, err.Error(), "customers_email_key")
}

func TestCustomerRepository_Insert_DatabaseError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).WillReturnError(errors.New("connection reset"))

	_, err := repo.Insert(context.Background(), &models.Customer{FullName: "Jane Doe", Email: "jane@x.com"})
	assert.True(t, errors.Is(err, ErrDatabaseError))
}

func TestCustomerRepository_FindByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(customerRowColumns).AddRow(int64(4), int64(10), int64(0), "Jane Doe", "jane@x.com", nil, false))

	got, err := repo.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, &models.Customer{ID: 4, Created: 10, FullName: "Jane Doe", Email: "jane@x.com", IsActive: false}, got)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(customerRowColumns))

	_, err = repo.FindByID(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_FindByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = $1")).
		WithArgs("jane@x.com").
		WillReturnRows(sqlmock.NewRows(customerRowColumns).AddRow(int64(1), int64(10), int64(20), "Jane Doe", "jane@x.com", "+123456", true))

	got, err := repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+123456", *got.Phone)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = $1")).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows(customerRowColumns))

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Save_Upsert(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET")).
		WithArgs(int64(3), int64(10), int64(50), "Jane D.", "jane@x.com", "+123456", true).
		WillReturnRows(sqlmock.NewRows(customerRowColumns).AddRow(int64(3), int64(10), int64(50), "Jane D.", "jane@x.com", "+123456", true))

	got, err := repo.Save(context.Background(), &models.Customer{
		ID: 3, Created: 10, Updated: 50, FullName: "Jane D.", Email: "jane@x.com", Phone: strPtr("+123456"), IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", got.FullName)
	assert.Equal(t, int64(50), got.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Save_ZeroIDInserts(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (created, updated, full_name, email, phone, is_active)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	got, err := repo.Save(context.Background(), &models.Customer{FullName: "Jane Doe", Email: "jane@x.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListAll(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(customerRowColumns).
			AddRow(int64(1), int64(10), int64(0), "Ann Lee", "ann@x.com", nil, true).
			AddRow(int64(2), int64(11), int64(0), "Bob Ray", "bob@x.com", "+12345", false))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ann@x.com", got[0].Email)
	assert.False(t, got[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListAll_Empty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(customerRowColumns))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
