package services

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CustomerBill is a customer annotated with the sum of product prices across
// their orders. Orders whose product reference was cleared contribute zero.
type CustomerBill struct {
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TotalBill  float64   `json:"totalBill"`
}

type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// TotalSpend returns the customer's running total. A customer with no orders
// totals zero, not null.
func (s *BillingService) TotalSpend(customerID uuid.UUID) (float64, error) {
	var total float64
	err := s.db.Raw(`
		SELECT COALESCE(SUM(products.price), 0)
		FROM orders
		LEFT JOIN products ON products.id = orders.product_id AND products.deleted_at IS NULL
		WHERE orders.customer_id = ? AND orders.deleted_at IS NULL
	`, customerID).Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "total spend")
	}
	return total, nil
}

// CustomersByBill returns every customer annotated with their total, sorted
// by total. Customer id breaks ties so the order is stable across runs.
func (s *BillingService) CustomersByBill(descending bool) ([]CustomerBill, error) {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	var bills []CustomerBill
	err := s.db.Raw(`
		SELECT customers.id AS customer_id, customers.name, customers.email,
		       COALESCE(SUM(products.price), 0) AS total_bill
		FROM customers
		LEFT JOIN orders ON orders.customer_id = customers.id AND orders.deleted_at IS NULL
		LEFT JOIN products ON products.id = orders.product_id AND products.deleted_at IS NULL
		WHERE customers.deleted_at IS NULL
		GROUP BY customers.id, customers.name, customers.email
		ORDER BY total_bill `+direction+`, customers.id ASC
	`).Scan(&bills).Error
	if err != nil {
		return nil, errors.Wrap(err, "customers by bill")
	}
	return bills, nil
}
