package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crmsystem-backend/config"
	"crmsystem-backend/middleware"
	"crmsystem-backend/models"
	"crmsystem-backend/services"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Accounts *services.AccountService
	Logger   *slog.Logger
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
}

// Register creates a login and provisions its customer profile. New accounts
// always land in the "customer" role.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := a.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password, // hashed in BeforeCreate
	}
	if err := a.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if _, err := a.Accounts.ProvisionCustomerProfile(&user); err != nil {
		a.Logger.Error("customer provisioning failed", "user", user.Username, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to provision customer profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account was created for " + user.Username,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := a.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Username or Password is incorrect!")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Username or Password is incorrect!")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), a.Cfg.JWT.Secret, a.Cfg.JWT.ExpiryHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	a.DB.Model(&user).Update("last_login", &now)

	c.SetCookie("token", token, a.Cfg.JWT.ExpiryHours*3600, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (a *AuthController) Me(c *gin.Context) {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        ident.UserID,
			"username":  ident.Username,
			"email":     ident.Email,
			"roles":     ident.Roles,
			"superuser": ident.Superuser,
		},
	})
}
