package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalSpend_SumsProductPrices(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	customer := createCustomer(t, db, "alice")
	shoes := createProduct(t, db, "Shoes", 1200)
	jacket := createProduct(t, db, "Jacket", 800.50)

	createOrder(t, db, customer, shoes)
	createOrder(t, db, customer, jacket)
	createOrder(t, db, customer, shoes)

	total, err := billing.TotalSpend(customer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3200.50, total, 0.001)
}

func TestTotalSpend_NoOrdersIsZero(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	customer := createCustomer(t, db, "bob")

	total, err := billing.TotalSpend(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestTotalSpend_MissingProductContributesZero(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	customer := createCustomer(t, db, "carol")
	shoes := createProduct(t, db, "Shoes", 500)

	createOrder(t, db, customer, shoes)
	createOrder(t, db, customer, nil) // product reference already cleared

	total, err := billing.TotalSpend(customer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500, total, 0.001)
}

func TestCustomersByBill_Ordering(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	low := createCustomer(t, db, "low")
	mid := createCustomer(t, db, "mid")
	high := createCustomer(t, db, "high")
	_ = createCustomer(t, db, "none")

	cheap := createProduct(t, db, "Cheap", 100)
	pricey := createProduct(t, db, "Pricey", 1000)

	createOrder(t, db, low, cheap)
	createOrder(t, db, mid, cheap)
	createOrder(t, db, mid, cheap)
	createOrder(t, db, high, pricey)

	asc, err := billing.CustomersByBill(false)
	require.NoError(t, err)
	require.Len(t, asc, 4)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].TotalBill, asc[i].TotalBill)
	}
	assert.Equal(t, "none", asc[0].Name)
	assert.Equal(t, 0.0, asc[0].TotalBill)
	assert.Equal(t, "high", asc[3].Name)

	desc, err := billing.CustomersByBill(true)
	require.NoError(t, err)
	require.Len(t, desc, 4)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].TotalBill, desc[i].TotalBill)
	}
	assert.Equal(t, "high", desc[0].Name)
}

func TestCustomersByBill_StableForEqualTotals(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	a := createCustomer(t, db, "tied-a")
	b := createCustomer(t, db, "tied-b")
	item := createProduct(t, db, "Item", 250)
	createOrder(t, db, a, item)
	createOrder(t, db, b, item)

	first, err := billing.CustomersByBill(false)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := billing.CustomersByBill(false)
		require.NoError(t, err)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].CustomerID, again[j].CustomerID)
		}
	}
}

func TestCustomersByBill_ExcludesDeletedCustomers(t *testing.T) {
	db := openTestDB(t)
	billing := NewBillingService(db)

	keep := createCustomer(t, db, "keep")
	gone := createCustomer(t, db, "gone")
	_ = keep

	require.NoError(t, db.Delete(gone).Error)

	bills, err := billing.CustomersByBill(false)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "keep", bills[0].Name)
}
