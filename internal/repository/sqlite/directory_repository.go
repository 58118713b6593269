package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

type CityRepository struct {
	db *sql.DB
}

func NewCityRepository(db *sql.DB) repository.CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, city *domain.City) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO city (name) VALUES (?)`, city.Name)
	if err != nil {
		return 0, translate(err, "insert city")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("city last insert id: %w", err)
	}
	city.ID = id
	return id, nil
}

func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id_city, name FROM city ORDER BY id_city ASC`)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO customer (name, email, phone, zip)
VALUES (?, ?, ?, ?)`,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Zip,
	)
	if err != nil {
		return 0, translate(err, "insert customer")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("customer last insert id: %w", err)
	}
	customer.ID = id
	return id, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id_customer, name, email, phone, zip
FROM customer
ORDER BY id_customer ASC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Zip); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
