package controllers

import (
	"log/slog"
	"net/http"

	"crmsystem-backend/models"
	"crmsystem-backend/services"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB      *gorm.DB
	Billing *services.BillingService
	Logger  *slog.Logger
}

// GetDashboard is the staff landing page: all orders with status counts and
// the customer list sorted by total bill, highest spenders first.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	var orders []models.Order
	if err := dc.DB.Preload("Customer").Preload("Product").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	var totalOrders, delivered, pending int64
	dc.DB.Model(&models.Order{}).Count(&totalOrders)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.StatusDelivered).Count(&delivered)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pending)

	customers, err := dc.Billing.CustomersByBill(true)
	if err != nil {
		dc.Logger.Error("dashboard billing failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":          orders,
		"customers":       customers,
		"totalOrders":     totalOrders,
		"ordersDelivered": delivered,
		"ordersPending":   pending,
	})
}
