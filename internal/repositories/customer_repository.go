package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"customers_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// CustomerRepository is the record store for customers.
// Every method touches a single row; FindByEmail and ListAll see inactive rows too.
type CustomerRepository interface {
	Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	ListAll(ctx context.Context) ([]models.Customer, error)
}

const customerColumns = `id, created, updated, full_name, email, phone, is_active`

type customerRepository struct {
	db sqlx.ExtContext
}

// NewCustomerRepository creates a Postgres-backed CustomerRepository.
// db may be a *sqlx.DB or a *sqlx.Tx.
func NewCustomerRepository(db sqlx.ExtContext) CustomerRepository {
	return &customerRepository{db: db}
}

// Insert stores a new customer and fills in the id assigned by the database.
func (r *customerRepository) Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers (created, updated, full_name, email, phone, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	created := *customer
	err := r.db.QueryRowxContext(ctx, query,
		created.Created, created.Updated, created.FullName, created.Email, created.Phone, created.IsActive,
	).Scan(&created.ID)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return &created, nil
}

// FindByID retrieves a customer by id regardless of its active flag.
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, customer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

// FindByEmail retrieves a customer by email regardless of its active flag.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	if err := sqlx.GetContext(ctx, r.db, customer, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by email %s: %v", ErrDatabaseError, email, err)
	}
	return customer, nil
}

// Save upserts the customer by id. A zero id is inserted as a new row.
// created is never overwritten for an existing row.
func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == 0 {
		return r.Insert(ctx, customer)
	}

	query := `INSERT INTO customers (` + customerColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	            updated = EXCLUDED.updated, full_name = EXCLUDED.full_name, email = EXCLUDED.email,
	            phone = EXCLUDED.phone, is_active = EXCLUDED.is_active
	          RETURNING ` + customerColumns

	saved := &models.Customer{}
	err := sqlx.GetContext(ctx, r.db, saved, query,
		customer.ID, customer.Created, customer.Updated, customer.FullName, customer.Email, customer.Phone, customer.IsActive,
	)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: saving customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	return saved, nil
}

// ListAll returns every customer, active or not, in insertion order.
func (r *customerRepository) ListAll(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id ASC`
	if err := sqlx.SelectContext(ctx, r.db, &customers, query); err != nil {
		return nil, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	return customers, nil
}
