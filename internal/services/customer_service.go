package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customers_backend/internal/models"
	"customers_backend/internal/repositories"
	"customers_backend/pkg/utils"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerDeleted       = errors.New("customer with such an id has been deleted")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	ErrImmutableField        = errors.New("field cannot be changed")
)

type CreateCustomerRequest struct {
	FullName string  `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

// UpdateCustomerRequest is a full replace: every field must be supplied.
// Email must equal the stored value.
type UpdateCustomerRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*models.CustomerResponse, error)
	GetCustomers(ctx context.Context) ([]models.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*models.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID int64, req UpdateCustomerRequest) (*models.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	now          func() time.Time
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) CustomerService {
	return newCustomerService(repo, time.Now)
}

func newCustomerService(repo repositories.CustomerRepository, now func() time.Time) *customerService {
	return &customerService{customerRepo: repo, now: now}
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*models.CustomerResponse, error) {
	if req.Email == nil {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidFormat)
	}
	if err := ValidateCustomerData(req.FullName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	email := *req.Email
	_, err := s.customerRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: customer with email %s already exists", ErrCustomerAlreadyExists, email)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	customer := &models.Customer{
		Created:  s.now().UnixMilli(),
		FullName: req.FullName,
		Email:    email,
		Phone:    req.Phone,
		IsActive: true,
	}

	created, err := s.customerRepo.Insert(ctx, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: customer with email %s already exists", ErrCustomerAlreadyExists, email)
		}
		return nil, fmt.Errorf("failed to create customer in repository: %w", err)
	}

	utils.LogDebug("Customer created", map[string]interface{}{"customer_id": created.ID})
	resp := created.ToResponse()
	return &resp, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]models.CustomerResponse, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return models.ActiveResponses(customers), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*models.CustomerResponse, error) {
	customer, err := s.findActive(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := customer.ToResponse()
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req UpdateCustomerRequest) (*models.CustomerResponse, error) {
	customer, err := s.findActive(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := checkRequiredFields(
		requiredField{name: "fullName", present: req.FullName != nil},
		requiredField{name: "email", present: req.Email != nil},
		requiredField{name: "phone", present: req.Phone != nil},
	); err != nil {
		return nil, err
	}

	if err := ValidateCustomerData(*req.FullName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	if *req.Email != customer.Email {
		return nil, fmt.Errorf("%w: you cannot change a customer's email address", ErrImmutableField)
	}

	customer.FullName = *req.FullName
	customer.Phone = req.Phone
	customer.Updated = s.now().UnixMilli()

	saved, err := s.customerRepo.Save(ctx, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer in repository: %w", err)
	}

	resp := saved.ToResponse()
	return &resp, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	customer, err := s.findActive(ctx, customerID)
	if err != nil {
		return err
	}

	customer.IsActive = false
	if _, err := s.customerRepo.Save(ctx, customer); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	utils.LogDebug("Customer soft-deleted", map[string]interface{}{"customer_id": customerID})
	return nil
}

// findActive loads a customer, failing with ErrCustomerNotFound when absent
// and ErrCustomerDeleted when soft-deleted.
func (s *customerService) findActive(ctx context.Context, customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	if !customer.IsActive {
		return nil, ErrCustomerDeleted
	}
	return customer, nil
}
