package handlers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcard-app/smartcard-golang/internal/models"
)

// catalogFixture registers an owner, creates a store and returns the
// token plus a category id, so item tests start from a ready catalog.
func catalogFixture(t *testing.T, app *testApp) (token string, categoryID int64) {
	t.Helper()

	token = registerAndLogin(t, app, "owner@example.com")
	require.Equal(t, http.StatusCreated,
		app.doJSON(http.MethodPost, "/v1/stores", token, validStoreInput("acme-cafe")).Code)

	rec := app.doJSON(http.MethodPost, "/v1/categories", token, gin.H{
		"name":      "Drinks",
		"sortOrder": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Category models.Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return token, out.Category.ID
}

func TestCreateCategory_NeedsAStoreFirst(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "owner@example.com")

	rec := app.doJSON(http.MethodPost, "/v1/categories", token, gin.H{"name": "Drinks"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, app.repo.categories)
}

func TestGetMyCategories_IncludesInactive(t *testing.T) {
	app := newTestApp(t)
	token, _ := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPost, "/v1/categories", token, gin.H{
		"name":      "Seasonal",
		"sortOrder": 0,
		"isActive":  false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.doJSON(http.MethodGet, "/v1/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Categories, 2, "dashboard listing shows inactive categories too")
	assert.Equal(t, "Seasonal", out.Categories[0].Name, "sortOrder ascending")
}

func TestUpdateCategory_OnlyOwn(t *testing.T) {
	app := newTestApp(t)
	app.repo.categories = append(app.repo.categories, &models.Category{
		ID: 500, StoreID: 999, Name: "Foreign", IsActive: true,
	})
	token, categoryID := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPut, "/v1/categories/500", token, gin.H{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, "other stores' categories look absent")

	rec = app.doJSON(http.MethodPut, "/v1/categories/"+itoa(categoryID), token, gin.H{
		"name":      "Hot Drinks",
		"sortOrder": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Hot Drinks")
}

func TestDeleteCategory(t *testing.T) {
	app := newTestApp(t)
	token, categoryID := catalogFixture(t, app)

	rec := app.doJSON(http.MethodDelete, "/v1/categories/"+itoa(categoryID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, app.repo.categories)

	rec = app.doJSON(http.MethodDelete, "/v1/categories/"+itoa(categoryID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateItem(t *testing.T) {
	app := newTestApp(t)
	token, categoryID := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPost, "/v1/items", token, gin.H{
		"categoryId": categoryID,
		"name":       "Coffee",
		"priceCents": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"priceCents":500`)
}

func TestCreateItem_ForeignCategoryLooksAbsent(t *testing.T) {
	app := newTestApp(t)
	app.repo.categories = append(app.repo.categories, &models.Category{
		ID: 500, StoreID: 999, Name: "Foreign", IsActive: true,
	})
	token, _ := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPost, "/v1/items", token, gin.H{
		"categoryId": 500,
		"name":       "Coffee",
		"priceCents": 500,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, app.repo.items)
}

func TestItemLifecycle(t *testing.T) {
	app := newTestApp(t)
	token, categoryID := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPost, "/v1/items", token, gin.H{
		"categoryId": categoryID,
		"name":       "Coffee",
		"priceCents": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Item models.Item `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = app.doJSON(http.MethodPut, "/v1/items/"+itoa(created.Item.ID), token, gin.H{
		"name":       "Espresso",
		"priceCents": 700,
		"isActive":   false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.doJSON(http.MethodGet, "/v1/categories/"+itoa(categoryID)+"/items", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Items []models.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Espresso", listed.Items[0].Name)
	assert.Equal(t, int64(700), listed.Items[0].PriceCents)
	assert.False(t, listed.Items[0].IsActive)

	rec = app.doJSON(http.MethodDelete, "/v1/items/"+itoa(created.Item.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, app.repo.items)
}

func TestUpdateItem_OmittedIsActiveKeepsStoredFlag(t *testing.T) {
	app := newTestApp(t)
	token, categoryID := catalogFixture(t, app)

	rec := app.doJSON(http.MethodPost, "/v1/items", token, gin.H{
		"categoryId": categoryID,
		"name":       "Coffee",
		"priceCents": 500,
		"isActive":   false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Item models.Item `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.Item.IsActive)

	// A price edit that says nothing about isActive must not re-publish.
	rec = app.doJSON(http.MethodPut, "/v1/items/"+itoa(created.Item.ID), token, gin.H{
		"name":       "Coffee",
		"priceCents": 600,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.doJSON(http.MethodGet, "/v1/categories/"+itoa(categoryID)+"/items", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Items []models.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, int64(600), listed.Items[0].PriceCents)
	assert.False(t, listed.Items[0].IsActive, "price edit must not reactivate the item")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
