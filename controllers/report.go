package controllers

import (
	"log/slog"
	"net/http"

	"crmsystem-backend/services"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Billing *services.BillingService
	Logger  *slog.Logger
}

// GetCustomersByBill is the billing report: every customer with their total,
// ascending.
func (rc *ReportController) GetCustomersByBill(c *gin.Context) {
	customers, err := rc.Billing.CustomersByBill(false)
	if err != nil {
		rc.Logger.Error("billing report failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "An error occurred while processing the customers.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
