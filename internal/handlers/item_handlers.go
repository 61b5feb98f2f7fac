package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/models"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
)

type CreateItemInput struct {
	CategoryID  int64   `json:"categoryId" binding:"required,gt=0"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"priceCents" binding:"gte=0"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"priceCents" binding:"gte=0"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

// CreateItem is the handler for POST /v1/items
func (h *Handlers) CreateItem(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}

	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.Item{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := h.Repo.CreateItem(c.Request.Context(), store.ID, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Log.Error("item creation failed",
			zap.Int64("storeId", store.ID), zap.Int64("categoryId", input.CategoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created",
		"item":    item,
	})
}

// GetCategoryItems is the handler for GET /v1/categories/:id/items
func (h *Handlers) GetCategoryItems(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.Repo.FindItemsByCategory(c.Request.Context(), store.ID, categoryID)
	if err != nil {
		h.Log.Error("item listing failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateItem is the handler for PUT /v1/items/:id
func (h *Handlers) UpdateItem(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Repo.FindItemByID(c.Request.Context(), store.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.Log.Error("item lookup failed", zap.Int64("itemId", itemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	item.Name = input.Name
	item.Description = input.Description
	item.PriceCents = input.PriceCents
	item.ImageURL = input.ImageURL
	// Omitting isActive keeps the stored flag; editing a deactivated
	// item must not re-publish it.
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.UpdatedAt = time.Now()

	if err := h.Repo.UpdateItem(c.Request.Context(), store.ID, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.Log.Error("item update failed", zap.Int64("itemId", itemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated",
		"item":    item,
	})
}

// DeleteItem is the handler for DELETE /v1/items/:id
func (h *Handlers) DeleteItem(c *gin.Context) {
	store, ok := h.requireOwnStore(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Repo.DeleteItem(c.Request.Context(), store.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.Log.Error("item deletion failed", zap.Int64("itemId", itemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
