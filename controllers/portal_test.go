package controllers

import (
	"net/http"
	"testing"

	"crmsystem-backend/middleware"
	"crmsystem-backend/models"
	"crmsystem-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func portalRouter(db *gorm.DB, mailer *captureMailer, ident middleware.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)

	accounts := services.NewAccountService(db, quietLogger())
	notifier := services.NewNotificationService(mailer, nil, "admin@example.com", quietLogger())
	pc := &PortalController{DB: db, Accounts: accounts, Notifier: notifier, Logger: quietLogger()}

	r := gin.New()
	r.Use(withIdentity(ident))
	r.GET("/user", pc.GetUserHome)
	r.GET("/account", pc.GetAccount)
	r.PUT("/account", pc.UpdateAccount)
	r.POST("/send-query", pc.SendQuery)
	return r
}

func seedPortalUser(t *testing.T, db *gorm.DB) (*models.User, *models.Customer) {
	t.Helper()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hunter2secret"}
	require.NoError(t, db.Create(user).Error)

	accounts := services.NewAccountService(db, quietLogger())
	customer, err := accounts.ProvisionCustomerProfile(user)
	require.NoError(t, err)
	return user, customer
}

func identityFor(user *models.User) middleware.Identity {
	return middleware.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    []string{models.RoleCustomer},
	}
}

func TestSendQuery_EmptyFieldsNeverTouchTransport(t *testing.T) {
	db := openTestDB(t)
	mailer := &captureMailer{}
	user, _ := seedPortalUser(t, db)
	r := portalRouter(db, mailer, identityFor(user))

	for _, body := range []gin.H{
		{"subject": "", "message": "hello"},
		{"subject": "help", "message": ""},
		{"subject": "   ", "message": "hello"},
		{},
	} {
		w := jsonRequest(t, r, http.MethodPost, "/send-query", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "subject and message")
	}

	assert.Empty(t, mailer.sent)

	var count int64
	db.Model(&models.CustomerQuery{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSendQuery_RelaysExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	mailer := &captureMailer{}
	user, _ := seedPortalUser(t, db)
	r := portalRouter(db, mailer, identityFor(user))

	w := jsonRequest(t, r, http.MethodPost, "/send-query", gin.H{
		"subject": "Wrong size",
		"message": "The shoes are two sizes too small.",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"admin@example.com"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "Message from alice (alice@example.com):")

	var count int64
	db.Model(&models.CustomerQuery{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSendQuery_DeliveryFaultKeepsQuery(t *testing.T) {
	db := openTestDB(t)
	mailer := &captureMailer{err: assert.AnError}
	user, _ := seedPortalUser(t, db)
	r := portalRouter(db, mailer, identityFor(user))

	w := jsonRequest(t, r, http.MethodPost, "/send-query", gin.H{
		"subject": "Hello",
		"message": "Is anyone there?",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "delivery failed")

	var count int64
	db.Model(&models.CustomerQuery{}).Count(&count)
	assert.Equal(t, int64(1), count, "mutation survives the transport fault")
}

func TestGetUserHome_OwnOrdersWithCounts(t *testing.T) {
	db := openTestDB(t)
	user, customer := seedPortalUser(t, db)
	r := portalRouter(db, &captureMailer{}, identityFor(user))

	shoes := seedProduct(t, db, "Shoes", 100)
	for _, status := range []string{models.StatusDelivered, models.StatusPending, models.StatusPending} {
		order := models.Order{CustomerID: &customer.ID, ProductID: &shoes.ID, Status: status}
		require.NoError(t, db.Create(&order).Error)
	}

	// Another customer's orders must not leak in.
	other := seedCustomer(t, db, "other")
	order := models.Order{CustomerID: &other.ID, ProductID: &shoes.ID, Status: models.StatusPending}
	require.NoError(t, db.Create(&order).Error)

	w := jsonRequest(t, r, http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalOrders":3`)
	assert.Contains(t, w.Body.String(), `"ordersDelivered":1`)
	assert.Contains(t, w.Body.String(), `"ordersPending":2`)
}

func TestGetUserHome_NoProfileIs404(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{Username: "ghost", Email: "ghost@example.com", Password: "hunter2secret"}
	require.NoError(t, db.Create(user).Error)

	r := portalRouter(db, &captureMailer{}, identityFor(user))

	w := jsonRequest(t, r, http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Customer data not found")
}

func TestUpdateAccount(t *testing.T) {
	db := openTestDB(t)
	user, customer := seedPortalUser(t, db)
	r := portalRouter(db, &captureMailer{}, identityFor(user))

	w := jsonRequest(t, r, http.MethodPut, "/account", gin.H{"phone": "+15550199"})
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, "+15550199", reloaded.Phone)
	assert.Equal(t, "alice", reloaded.Name, "untouched fields keep their values")
}
