package repositories

import (
	"context"
	"fmt"
	"sync"

	"customers_backend/internal/models"
)

// memoryCustomerRepository keeps customers in process memory.
// It mirrors the Postgres table: sequential ids from 1, unique email across all rows.
type memoryCustomerRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []models.Customer
	byID   map[int64]int
}

// NewMemoryCustomerRepository creates an empty in-memory CustomerRepository.
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepository{
		nextID: 1,
		byID:   make(map[int64]int),
	}
}

func (r *memoryCustomerRepository) Insert(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(customer.Email, 0) {
		return nil, fmt.Errorf("%w: email %s (constraint: customers_email_key)", ErrDuplicateKey, customer.Email)
	}

	created := cloneCustomer(*customer)
	created.ID = r.nextID
	r.nextID++
	r.byID[created.ID] = len(r.rows)
	r.rows = append(r.rows, created)

	out := cloneCustomer(created)
	return &out, nil
}

func (r *memoryCustomerRepository) FindByID(_ context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneCustomer(r.rows[idx])
	return &out, nil
}

func (r *memoryCustomerRepository) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.Email == email {
			out := cloneCustomer(row)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCustomerRepository) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == 0 {
		return r.Insert(ctx, customer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(customer.Email, customer.ID) {
		return nil, fmt.Errorf("%w: email %s (constraint: customers_email_key)", ErrDuplicateKey, customer.Email)
	}

	saved := cloneCustomer(*customer)
	if idx, ok := r.byID[saved.ID]; ok {
		saved.Created = r.rows[idx].Created
		r.rows[idx] = saved
	} else {
		r.byID[saved.ID] = len(r.rows)
		r.rows = append(r.rows, saved)
		if saved.ID >= r.nextID {
			r.nextID = saved.ID + 1
		}
	}

	out := cloneCustomer(saved)
	return &out, nil
}

func (r *memoryCustomerRepository) ListAll(_ context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]models.Customer, 0, len(r.rows))
	for _, row := range r.rows {
		customers = append(customers, cloneCustomer(row))
	}
	return customers, nil
}

func (r *memoryCustomerRepository) emailTakenLocked(email string, exceptID int64) bool {
	for _, row := range r.rows {
		if row.Email == email && row.ID != exceptID {
			return true
		}
	}
	return false
}

// cloneCustomer copies c so callers never share the phone pointer with the store.
func cloneCustomer(c models.Customer) models.Customer {
	if c.Phone != nil {
		phone := *c.Phone
		c.Phone = &phone
	}
	return c
}
