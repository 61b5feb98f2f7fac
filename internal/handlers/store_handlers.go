package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/models"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
)

// --- Inputs ---

// StoreInput is used for both creation and full update. The slug field
// carries the custom 'storeslug' rule (registered in routes), so slug
// governance runs during binding, before anything touches the database.
type StoreInput struct {
	Name            string  `json:"name" binding:"required"`
	Slug            string  `json:"slug" binding:"required,storeslug"`
	Whatsapp        string  `json:"whatsapp" binding:"required"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	PrimaryColor    string  `json:"primaryColor"`
	BusinessType    string  `json:"businessType"`
	RequiresAddress bool    `json:"requiresAddress"`
	IsActive        *bool   `json:"isActive"`
}

// slugRejected reports whether a binding error was specifically the slug
// failing governance, as opposed to some other field.
func slugRejected(err error) bool {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return false
	}
	for _, fieldErr := range verr {
		if fieldErr.Tag() == "storeslug" {
			return true
		}
	}
	return false
}

// CreateStore is the handler for POST /v1/stores
func (h *Handlers) CreateStore(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	var input StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if slugRejected(err) {
			// Rejected by governance alone; no persistence call happened.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       "Slug is invalid or reserved",
				"reason":      "invalid",
				"suggestions": h.availableSuggestions(c, input.Name),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.Repo.FindStoreByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("store lookup failed", zap.Int64("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a store"})
		return
	}

	store := &models.Store{
		UserID:          userID,
		Slug:            input.Slug,
		Name:            input.Name,
		Description:     input.Description,
		Whatsapp:        input.Whatsapp,
		Address:         input.Address,
		PrimaryColor:    input.PrimaryColor,
		BusinessType:    input.BusinessType,
		RequiresAddress: input.RequiresAddress,
		IsActive:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.Repo.CreateStore(c.Request.Context(), store); err != nil {
		// A concurrent creation with the same slug loses here: the unique
		// index is the authority, and losing is "taken", not a fault.
		if errors.Is(err, repository.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Slug is already taken",
				"reason":      "taken",
				"suggestions": h.availableSuggestions(c, input.Name),
			})
			return
		}
		h.Log.Error("store creation failed",
			zap.Int64("userId", userID), zap.String("slug", input.Slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"store":   store,
	})
}

// GetMyStore is the handler for GET /v1/stores/me
func (h *Handlers) GetMyStore(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	store, err := h.Repo.FindStoreByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("store lookup failed", zap.Int64("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store"})
		return
	}
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// UpdateMyStore is the handler for PUT /v1/stores/me
// Changing the slug re-runs governance (the 'storeslug' binding rule) and
// re-hits the unique index, exactly like creation.
func (h *Handlers) UpdateMyStore(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	var input StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if slugRejected(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       "Slug is invalid or reserved",
				"reason":      "invalid",
				"suggestions": h.availableSuggestions(c, input.Name),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, err := h.Repo.FindStoreByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("store lookup failed", zap.Int64("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store yet"})
		return
	}

	store.Slug = input.Slug
	store.Name = input.Name
	store.Description = input.Description
	store.Whatsapp = input.Whatsapp
	store.Address = input.Address
	store.PrimaryColor = input.PrimaryColor
	store.BusinessType = input.BusinessType
	store.RequiresAddress = input.RequiresAddress
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}
	store.UpdatedAt = time.Now()

	if err := h.Repo.UpdateStore(c.Request.Context(), store); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Slug is already taken",
				"reason":      "taken",
				"suggestions": h.availableSuggestions(c, input.Name),
			})
			return
		}
		h.Log.Error("store update failed",
			zap.Int64("storeId", store.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store updated successfully",
		"store":   store,
	})
}

// DeleteMyStore is the handler for DELETE /v1/stores/me
// Hard delete, dashboard only; categories and items cascade with it.
func (h *Handlers) DeleteMyStore(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	store, err := h.Repo.FindStoreByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("store lookup failed", zap.Int64("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store yet"})
		return
	}

	if err := h.Repo.DeleteStore(c.Request.Context(), store.ID); err != nil {
		h.Log.Error("store deletion failed", zap.Int64("storeId", store.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
