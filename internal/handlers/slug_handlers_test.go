package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcard-app/smartcard-golang/internal/models"
)

type slugCheck struct {
	Slug        string   `json:"slug"`
	Status      string   `json:"status"`
	Suggestions []string `json:"suggestions"`
}

func (a *testApp) checkSlug(t *testing.T, query string) slugCheck {
	t.Helper()
	rec := a.get("/v1/slugs/check?" + query)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out slugCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCheckSlug_Available(t *testing.T) {
	app := newTestApp(t)

	out := app.checkSlug(t, "slug=acme-cafe")
	assert.Equal(t, "available", out.Status)
	assert.Empty(t, out.Suggestions)
}

func TestCheckSlug_Taken(t *testing.T) {
	app := newTestApp(t)
	app.repo.stores = append(app.repo.stores, &models.Store{
		ID: 1, UserID: 1, Slug: "acme-cafe", Name: "Acme Cafe", IsActive: true,
	})

	out := app.checkSlug(t, "slug=acme-cafe&name=Acme+Cafe")
	assert.Equal(t, "taken", out.Status)
	assert.NotEmpty(t, out.Suggestions)
	assert.NotContains(t, out.Suggestions, "acme-cafe")
}

func TestCheckSlug_Invalid(t *testing.T) {
	app := newTestApp(t)

	for _, slug := range []string{"dashboard", "a--b", "ab", "Caf%C3%A9"} {
		out := app.checkSlug(t, "slug="+slug)
		assert.Equal(t, "invalid", out.Status, "slug %q", slug)
	}
}

func TestCheckSlug_NameOnlyReturnsFreeSuggestions(t *testing.T) {
	app := newTestApp(t)
	app.repo.stores = append(app.repo.stores, &models.Store{
		ID: 1, UserID: 1, Slug: "acme-cafe-store", Name: "Squatter", IsActive: true,
	})

	rec := app.get("/v1/slugs/check?name=Acme+Caf%C3%A9")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Name        string   `json:"name"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Suggestions, "acme-cafe-oficial")
	assert.NotContains(t, out.Suggestions, "acme-cafe-store", "occupied candidates are filtered out")
}

func TestCheckSlug_MissingParams(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/v1/slugs/check")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
