package services

import (
	"testing"

	"crmsystem-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionCustomerProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db, quietLogger())

	user := &models.User{Username: "dave", Email: "dave@example.com", Password: "hunter2secret"}
	require.NoError(t, db.Create(user).Error)

	customer, err := svc.ProvisionCustomerProfile(user)
	require.NoError(t, err)
	assert.Equal(t, "dave", customer.Name)
	assert.Equal(t, "dave@example.com", customer.Email)
	require.NotNil(t, customer.UserID)
	assert.Equal(t, user.ID, *customer.UserID)

	var reloaded models.User
	require.NoError(t, db.Preload("Roles").First(&reloaded, "id = ?", user.ID).Error)
	assert.Contains(t, reloaded.RoleNames(), models.RoleCustomer)
}

func TestProvisionCustomerProfile_Idempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db, quietLogger())

	user := &models.User{Username: "erin", Email: "erin@example.com", Password: "hunter2secret"}
	require.NoError(t, db.Create(user).Error)

	first, err := svc.ProvisionCustomerProfile(user)
	require.NoError(t, err)
	second, err := svc.ProvisionCustomerProfile(user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCustomerForUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(db, quietLogger())

	user := &models.User{Username: "frank", Email: "frank@example.com", Password: "hunter2secret"}
	require.NoError(t, db.Create(user).Error)

	_, err := svc.CustomerForUser(user.ID)
	assert.Error(t, err, "no profile yet")

	provisioned, err := svc.ProvisionCustomerProfile(user)
	require.NoError(t, err)

	found, err := svc.CustomerForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, provisioned.ID, found.ID)
}
