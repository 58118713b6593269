package repository

import (
	"context"

	"threadboard/internal/domain"
)

type CityRepository interface {
	Create(ctx context.Context, city *domain.City) (int64, error)
	List(ctx context.Context) ([]domain.City, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (int64, error)
	List(ctx context.Context) ([]domain.Customer, error)
}
