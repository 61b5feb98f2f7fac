package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/models"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
)

type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sortOrder" binding:"gte=0"`
	IsActive    *bool   `json:"isActive"`
}

// requireOwnStore loads the caller's store or writes the error response.
func (h *Handlers) requireOwnStore(c *gin.Context) (*models.Store, bool) {
	userID := c.MustGet("userID").(int64)

	store, err := h.Repo.FindStoreByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("store lookup failed", zap.Int64("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store"})
		return nil, false
	}
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store yet"})
		return nil, false
	}
	return store, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// CreateCategory is the handler for POST /v1/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		StoreID:     store.ID,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := h.Repo.CreateCategory(c.Request.Context(), category); err != nil {
		h.Log.Error("category creation failed", zap.Int64("storeId", store.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created",
		"category": category,
	})
}

// GetMyCategories is the handler for GET /v1/categories
// The dashboard sees inactive categories too; only the public view hides them.
func (h *Handlers) GetMyCategories(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}

	categories, err := h.Repo.FindCategoriesByStore(c.Request.Context(), store.ID)
	if err != nil {
		h.Log.Error("category listing failed", zap.Int64("storeId", store.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCategory is the handler for PUT /v1/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Repo.FindCategoryByID(c.Request.Context(), store.ID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Log.Error("category lookup failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	category.Name = input.Name
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := h.Repo.UpdateCategory(c.Request.Context(), store.ID, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Log.Error("category update failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated",
		"category": category,
	})
}

// DeleteCategory is the handler for DELETE /v1/categories/:id
func (h *Handlers) DeleteCategory(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Repo.DeleteCategory(c.Request.Context(), store.ID, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Log.Error("category deletion failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
