package service

import (
	"context"
	"strings"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

// DirectoryService serves the standalone city and customer records.
type DirectoryService interface {
	ListCities(ctx context.Context) ([]domain.City, error)
	CreateCity(ctx context.Context, name string) (*domain.City, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
}

type directoryService struct {
	cities    repository.CityRepository
	customers repository.CustomerRepository
}

func NewDirectoryService(cities repository.CityRepository, customers repository.CustomerRepository) DirectoryService {
	return &directoryService{cities: cities, customers: customers}
}

func (s *directoryService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

func (s *directoryService) CreateCity(ctx context.Context, name string) (*domain.City, error) {
	name = strings.TrimSpace(name)
	if err := checkText("name", name, 60); err != nil {
		return nil, err
	}
	city := &domain.City{Name: name}
	if _, err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *directoryService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *directoryService) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customer.ID = 0
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Zip = strings.TrimSpace(customer.Zip)

	if err := checkText("name", customer.Name, 50); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		field, value string
		max          int
	}{
		{"email", customer.Email, 50},
		{"phone", customer.Phone, 20},
		{"zip", customer.Zip, 10},
	} {
		if f.value != "" {
			if err := checkText(f.field, f.value, f.max); err != nil {
				return nil, err
			}
		}
	}

	if _, err := s.customers.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
