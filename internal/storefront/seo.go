package storefront

import (
	"fmt"

	"github.com/smartcard-app/smartcard-golang/internal/models"
)

// Metadata carries the <title>/<meta description> and Open Graph fields
// for a storefront page. Derivation is a pure function of the resolved
// document (or of the raw slug on a miss), so the same data always
// renders the same metadata.
type Metadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
	OGType        string `json:"ogType"`
	OGURL         string `json:"ogUrl"`
}

// MetadataForDocument derives page metadata from an assembled document.
// The description prefers the store's own text and falls back to a
// generated line naming the business type and visible item count.
func MetadataForDocument(doc *models.StorefrontDocument, platformDomain string) Metadata {
	title := fmt.Sprintf("%s | SmartCard", doc.Store.Name)

	var description string
	if doc.Store.Description != nil && *doc.Store.Description != "" {
		description = *doc.Store.Description
	} else {
		description = fallbackDescription(doc)
	}

	return Metadata{
		Title:         title,
		Description:   description,
		OGTitle:       title,
		OGDescription: description,
		OGType:        "website",
		OGURL:         fmt.Sprintf("https://%s.%s/", doc.Store.Slug, platformDomain),
	}
}

// MetadataForMiss derives degraded-but-valid metadata for an unresolved
// slug, so a 404 page still carries sane tags instead of an error dump.
func MetadataForMiss(rawSlug string) Metadata {
	title := "Store not found | SmartCard"
	description := fmt.Sprintf("The store %q is not available on SmartCard.", rawSlug)
	return Metadata{
		Title:         title,
		Description:   description,
		OGTitle:       title,
		OGDescription: description,
		OGType:        "website",
	}
}

func fallbackDescription(doc *models.StorefrontDocument) string {
	count := doc.ItemCount()
	business := doc.Store.BusinessType
	if business == "" {
		business = "store"
	}

	if count == 1 {
		return fmt.Sprintf("%s - %s with 1 item on SmartCard.", doc.Store.Name, business)
	}
	return fmt.Sprintf("%s - %s with %d items on SmartCard.", doc.Store.Name, business, count)
}
