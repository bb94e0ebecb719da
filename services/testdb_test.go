package services

import (
	"fmt"
	"testing"

	"crmsystem-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Customer{},
		&models.Product{},
		&models.Tag{},
		&models.Order{},
		&models.CustomerQuery{},
	))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, Email: name + "@example.com", Phone: "+15550100"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Category: "Sports"}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createOrder(t *testing.T, db *gorm.DB, customer *models.Customer, product *models.Product) *models.Order {
	t.Helper()
	order := &models.Order{Status: models.StatusPending}
	if customer != nil {
		order.CustomerID = &customer.ID
	}
	if product != nil {
		order.ProductID = &product.ID
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
