package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/analytics"
	"github.com/smartcard-app/smartcard-golang/internal/slugs"
	"github.com/smartcard-app/smartcard-golang/internal/storefront"
)

// GetStorefront is the public render boundary: GET /:slug
// (subdomain-form requests arrive here too, rewritten by tenanthost).
// It returns the assembled storefront document plus its SEO metadata,
// and fires the visit signal without ever letting it touch the response.
func (h *Handlers) GetStorefront(c *gin.Context) {
	rawSlug := c.Param("slug")

	// An invalid candidate is just "no tenant", never an error.
	if !slugs.IsValid(rawSlug) {
		h.renderStorefrontMiss(c, rawSlug)
		return
	}

	doc, err := h.Storefront.Resolve(c.Request.Context(), rawSlug)
	if err != nil {
		// Absent, inactive and persistence faults all land here; the
		// assembler already logged any underlying cause.
		h.renderStorefrontMiss(c, rawSlug)
		return
	}

	// Fire-and-forget visit signal; the render never waits for it.
	h.Analytics.Dispatch(analytics.Event{
		StoreID: doc.Store.ID,
		Name:    analytics.EventStorefrontVisit,
		Metadata: map[string]string{
			"slug": rawSlug,
		},
	})

	h.Log.Debug("storefront rendered",
		zap.String("slug", rawSlug), zap.Int64("storeId", doc.Store.ID))

	c.JSON(http.StatusOK, gin.H{
		"storefront": doc,
		"seo":        storefront.MetadataForDocument(doc, h.PlatformDomain),
	})
}

func (h *Handlers) renderStorefrontMiss(c *gin.Context, rawSlug string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "Storefront not found",
		"seo":   storefront.MetadataForMiss(rawSlug),
	})
}
