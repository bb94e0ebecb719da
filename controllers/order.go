package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"crmsystem-backend/models"
	"crmsystem-backend/services"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderController struct {
	DB       *gorm.DB
	Billing  *services.BillingService
	Notifier *services.NotificationService
	Logger   *slog.Logger
}

type OrderLineInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
}

type CreateOrdersInput struct {
	Items []OrderLineInput `json:"items" binding:"required,min=1,max=5,dive"`
}

type UpdateOrderInput struct {
	ProductID *uuid.UUID `json:"productId"`
	Status    *string    `json:"status"`
	Note      *string    `json:"note"`
}

// CreateOrders creates up to five orders for one customer in a single
// all-or-nothing submission. The billing total is recomputed afterwards and
// the threshold email is dispatched best-effort.
func (oc *OrderController) CreateOrders(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := oc.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input CreateOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate every line before writing anything.
	orders := make([]models.Order, 0, len(input.Items))
	for _, item := range input.Items {
		var product models.Product
		if err := oc.DB.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Product not found: "+item.ProductID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		status := item.Status
		if status == "" {
			status = models.StatusPending
		}
		if !models.ValidStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown status: "+status)
			return
		}

		productID := item.ProductID
		orders = append(orders, models.Order{
			CustomerID: &customer.ID,
			ProductID:  &productID,
			Status:     status,
			Note:       item.Note,
		})
	}

	tx := oc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i := range orders {
		if err := tx.Create(&orders[i]).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create orders")
			return
		}
	}

	tx.Commit()

	response := gin.H{"orders": orders}

	total, err := oc.Billing.TotalSpend(customer.ID)
	if err != nil {
		oc.Logger.Error("billing recomputation failed", "customer", customer.ID, "error", err)
	} else {
		response["totalSpend"] = total
		if err := oc.Notifier.NotifyOrderTotal(&customer, total); err != nil {
			response["warning"] = "Orders created, but the notification email could not be sent."
		}
	}

	c.JSON(http.StatusCreated, response)
}

func (oc *OrderController) GetOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Customer").Preload("Product").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder changes an order's product, status, or note. A move into
// "Out for Delivery" triggers a best-effort SMS to the customer.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Customer").Preload("Product").
		First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	previousStatus := order.Status

	if input.ProductID != nil {
		var product models.Product
		if err := oc.DB.First(&product, "id = ?", *input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Product not found: "+input.ProductID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		order.ProductID = input.ProductID
		order.Product = &product
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown status: "+*input.Status)
			return
		}
		order.Status = *input.Status
	}
	if input.Note != nil {
		order.Note = *input.Note
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	response := gin.H{"order": order}

	if previousStatus != models.StatusOutForDelivery && order.Status == models.StatusOutForDelivery {
		productName := ""
		if order.Product != nil {
			productName = order.Product.Name
		}
		if err := oc.Notifier.NotifyOutForDelivery(order.Customer, productName); err != nil {
			response["warning"] = "Order updated, but the delivery notification could not be sent."
		}
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmDeleteOrder is the first step of the two-step delete: it returns the
// order and a confirmation prompt without mutating anything.
func (oc *OrderController) ConfirmDeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Customer").Preload("Product").
		First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":    order,
		"message": "Are you sure you want to delete this order?",
	})
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	result := oc.DB.Where("id = ?", orderUUID).Delete(&models.Order{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	oc.Logger.Info("order deleted", "order", orderUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
