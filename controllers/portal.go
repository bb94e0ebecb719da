package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"crmsystem-backend/middleware"
	"crmsystem-backend/models"
	"crmsystem-backend/services"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PortalController serves the customer-facing pages: own orders, account
// settings, and support queries.
type PortalController struct {
	DB       *gorm.DB
	Accounts *services.AccountService
	Notifier *services.NotificationService
	Logger   *slog.Logger
}

type UpdateAccountInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

type QueryInput struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// GetUserHome lists the caller's own orders with delivered/pending counts.
func (pc *PortalController) GetUserHome(c *gin.Context) {
	customer, ok := pc.currentCustomer(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := pc.DB.Preload("Product").
		Where("customer_id = ?", customer.ID).Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	var delivered, pending int
	for _, o := range orders {
		switch o.Status {
		case models.StatusDelivered:
			delivered++
		case models.StatusPending:
			pending++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":          orders,
		"totalOrders":     len(orders),
		"ordersDelivered": delivered,
		"ordersPending":   pending,
	})
}

func (pc *PortalController) GetAccount(c *gin.Context) {
	customer, ok := pc.currentCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (pc *PortalController) UpdateAccount(c *gin.Context) {
	customer, ok := pc.currentCustomer(c)
	if !ok {
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.ProfilePic != nil {
		customer.ProfilePic = *input.ProfilePic
	}

	if err := pc.DB.Save(customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// SendQuery records a support query and relays it to the admin address. An
// empty subject or message is rejected before the transport is ever touched;
// a delivery fault keeps the stored query and surfaces a warning.
func (pc *PortalController) SendQuery(c *gin.Context) {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		pc.Logger.Error("identity lookup failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	var input QueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Please enter a subject and message before sending.")
		return
	}
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	if input.Subject == "" || input.Message == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Please enter a subject and message before sending.")
		return
	}

	query := models.CustomerQuery{
		UserID:  ident.UserID,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := pc.DB.Create(&query).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save query")
		return
	}

	if err := pc.Notifier.RelayQuery(ident.Username, ident.Email, input.Subject, input.Message); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Your query was saved, but email delivery failed.",
			"query":   query,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your query has been sent to the admin.",
		"query":   query,
	})
}

// currentCustomer resolves the caller's customer profile, writing the error
// response itself when it cannot.
func (pc *PortalController) currentCustomer(c *gin.Context) (*models.Customer, bool) {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		pc.Logger.Error("identity lookup failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
		return nil, false
	}

	customer, err := pc.Accounts.CustomerForUser(ident.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer data not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return customer, true
}
