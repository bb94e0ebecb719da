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

type ProductController struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if *input.Price < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must be non-negative")
		return
	}
	if !models.ValidCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown category: "+input.Category)
		return
	}

	tags, err := pc.resolveTags(pc.DB, input.Tags)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve tags")
		return
	}

	product := models.Product{
		Name:        input.Name,
		Price:       *input.Price,
		Category:    input.Category,
		Description: input.Description,
		Tags:        tags,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	pc.Logger.Info("product created", "product", product.ID, "name", product.Name)
	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Preload("Tags").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := pc.DB.Preload("Tags").First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := pc.DB.Preload("Tags").First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must be non-negative")
			return
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown category: "+*input.Category)
			return
		}
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	if input.Tags != nil {
		tags, err := pc.resolveTags(pc.DB, *input.Tags)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve tags")
			return
		}
		if err := pc.DB.Model(&product).Association("Tags").Replace(tags); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tags")
			return
		}
		product.Tags = tags
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) ConfirmDeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":    product,
		"message": "Are you sure you want to delete this product? Orders referencing it will keep a cleared product reference.",
	})
}

// DeleteProduct clears the product reference on dependent orders before
// deleting, in one transaction.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	tx := pc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Order{}).Where("product_id = ?", productUUID).
		Update("product_id", nil).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to detach orders")
		return
	}

	result := tx.Where("id = ?", productUUID).Delete(&models.Product{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	tx.Commit()

	pc.Logger.Info("product deleted", "product", productUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// resolveTags get-or-creates tags by name.
func (pc *ProductController) resolveTags(db *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
