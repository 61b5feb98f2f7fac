package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/slugs"
)

// CheckSlug is the handler for GET /v1/slugs/check?slug=...&name=...
// It reports a governance verdict for the candidate ("invalid" | "taken"
// | "available") and, when the candidate is unusable, suggests free
// alternatives derived from the business name (or the candidate itself).
func (h *Handlers) CheckSlug(c *gin.Context) {
	candidate := c.Query("slug")
	name := c.Query("name")
	if candidate == "" && name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a 'slug' or 'name' query parameter"})
		return
	}

	seed := name
	if seed == "" {
		seed = candidate
	}

	if candidate != "" {
		if !slugs.IsValid(candidate) {
			c.JSON(http.StatusOK, gin.H{
				"slug":        candidate,
				"status":      "invalid",
				"suggestions": h.availableSuggestions(c, seed),
			})
			return
		}

		exists, err := h.Repo.SlugExists(c.Request.Context(), candidate)
		if err != nil {
			h.Log.Error("slug availability check failed",
				zap.String("slug", candidate), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not check slug availability"})
			return
		}
		if exists {
			c.JSON(http.StatusOK, gin.H{
				"slug":        candidate,
				"status":      "taken",
				"suggestions": h.availableSuggestions(c, seed),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"slug": candidate, "status": "available"})
		return
	}

	// Name only: hand back whatever candidates are actually free.
	c.JSON(http.StatusOK, gin.H{
		"name":        name,
		"suggestions": h.availableSuggestions(c, seed),
	})
}

// availableSuggestions filters governance suggestions down to slugs that
// are free right now. Availability can still change before creation; the
// unique index on stores.slug has the final word.
func (h *Handlers) availableSuggestions(c *gin.Context, seed string) []string {
	available := []string{}
	for _, candidate := range slugs.Suggest(seed) {
		exists, err := h.Repo.SlugExists(c.Request.Context(), candidate)
		if err != nil {
			h.Log.Warn("suggestion availability check failed",
				zap.String("slug", candidate), zap.Error(err))
			continue
		}
		if !exists {
			available = append(available, candidate)
		}
	}
	return available
}
