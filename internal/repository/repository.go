// Package repository is the persistence collaborator for the storefront
// pipeline: active-entity reads consumed by the assembler, plus the
// owner-scoped mutations behind the dashboard API. The slug uniqueness
// constraint lives here: the database index is the authority when two
// creations race on the same slug.
package repository

import (
	"context"
	"errors"

	"github.com/smartcard-app/smartcard-golang/internal/models"
)

var (
	// ErrSlugTaken is returned by CreateStore and UpdateStore when the
	// slug collides with an existing store's unique index.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrNotFound is returned by owner-scoped lookups and mutations when
	// the row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned by CreateUser on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

// StorefrontReader is the read surface the catalog assembler consumes.
// Implementations must apply the isActive filter and the documented
// ordering; callers treat them as black boxes.
type StorefrontReader interface {
	// FindActiveStoreBySlug returns the active store with the exact slug,
	// or (nil, nil) when no such store is visible.
	FindActiveStoreBySlug(ctx context.Context, slug string) (*models.Store, error)

	// FindActiveCategoriesByStore returns the store's active categories
	// ordered by sort_order asc, name asc.
	FindActiveCategoriesByStore(ctx context.Context, storeID int64) ([]models.Category, error)

	// FindActiveItemsByCategory returns the category's active items
	// ordered by name asc.
	FindActiveItemsByCategory(ctx context.Context, categoryID int64) ([]models.Item, error)
}

// Repository is the full persistence surface: the public read side plus
// the dashboard's owner-scoped queries and mutations.
type Repository interface {
	StorefrontReader

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Stores
	CreateStore(ctx context.Context, store *models.Store) error
	FindStoreByUserID(ctx context.Context, userID int64) (*models.Store, error)
	UpdateStore(ctx context.Context, store *models.Store) error
	DeleteStore(ctx context.Context, storeID int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Categories (dashboard view includes inactive rows)
	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategoriesByStore(ctx context.Context, storeID int64) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, storeID, categoryID int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, storeID int64, category *models.Category) error
	DeleteCategory(ctx context.Context, storeID, categoryID int64) error

	// Items
	CreateItem(ctx context.Context, storeID int64, item *models.Item) error
	FindItemsByCategory(ctx context.Context, storeID, categoryID int64) ([]models.Item, error)
	FindItemByID(ctx context.Context, storeID, itemID int64) (*models.Item, error)
	UpdateItem(ctx context.Context, storeID int64, item *models.Item) error
	DeleteItem(ctx context.Context, storeID, itemID int64) error
}
