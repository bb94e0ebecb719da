package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"crmsystem-backend/models"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

type CreateCustomerInput struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

type UpdateCustomerInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

func (ct *CustomerController) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer := models.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}
	if input.ProfilePic != "" {
		customer.ProfilePic = input.ProfilePic
	}

	if err := ct.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	ct.Logger.Info("customer created", "customer", customer.ID, "name", customer.Name)
	c.JSON(http.StatusCreated, customer)
}

func (ct *CustomerController) GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := ct.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns the customer with their orders for the detail view.
func (ct *CustomerController) GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := ct.DB.Preload("Orders").Preload("Orders.Product").
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":   customer,
		"orderCount": len(customer.Orders),
	})
}

func (ct *CustomerController) UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := ct.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
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

	if err := ct.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ConfirmDeleteCustomer renders the confirmation step. The delete itself only
// happens on the follow-up DELETE request.
func (ct *CustomerController) ConfirmDeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := ct.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":    customer,
		"message": "Are you sure you want to delete this customer? Their orders will keep a cleared customer reference.",
	})
}

// DeleteCustomer clears the customer reference on dependent orders and then
// deletes the customer, in one transaction.
func (ct *CustomerController) DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	tx := ct.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Order{}).Where("customer_id = ?", customerUUID).
		Update("customer_id", nil).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to detach orders")
		return
	}

	result := tx.Where("id = ?", customerUUID).Delete(&models.Customer{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	tx.Commit()

	ct.Logger.Info("customer deleted", "customer", customerUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
