// Package storefront assembles the public read model of a tenant: the
// store plus its visible category/item tree, built once per request from
// the persistence collaborator, and the SEO metadata derived from it.
package storefront

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/models"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
)

// ErrStorefrontNotFound is the single public outcome for every kind of
// miss: slug unknown, store inactive, or a persistence fault underneath.
// The public path must not reveal whether a disabled store exists, and
// must never leak storage errors.
var ErrStorefrontNotFound = errors.New("storefront not found")

// Assembler builds StorefrontDocuments from the persistence layer.
type Assembler struct {
	repo repository.StorefrontReader
	log  *zap.Logger
}

func NewAssembler(repo repository.StorefrontReader, log *zap.Logger) *Assembler {
	return &Assembler{repo: repo, log: log}
}

// Resolve produces the public document for slug, or ErrStorefrontNotFound.
// Categories come out ordered by sort_order ascending with name as the
// tie-break; items by name ascending. The ordering is re-applied here so
// it never depends on what the storage layer happened to return.
// Categories with zero visible items stay in the document with an empty
// item list.
func (a *Assembler) Resolve(ctx context.Context, slug string) (*models.StorefrontDocument, error) {
	store, err := a.repo.FindActiveStoreBySlug(ctx, slug)
	if err != nil {
		a.log.Error("storefront store lookup failed",
			zap.String("slug", slug), zap.Error(err))
		return nil, ErrStorefrontNotFound
	}
	if store == nil {
		return nil, ErrStorefrontNotFound
	}

	categories, err := a.repo.FindActiveCategoriesByStore(ctx, store.ID)
	if err != nil {
		a.log.Error("storefront category fetch failed",
			zap.String("slug", slug), zap.Int64("storeId", store.ID), zap.Error(err))
		return nil, ErrStorefrontNotFound
	}

	doc := &models.StorefrontDocument{
		Store:      *store,
		Categories: make([]models.StorefrontCategory, 0, len(categories)),
	}

	for _, cat := range categories {
		// A category deactivated between the two fetches is simply
		// omitted, never surfaced as an inconsistency.
		if !cat.IsActive {
			continue
		}

		items, err := a.repo.FindActiveItemsByCategory(ctx, cat.ID)
		if err != nil {
			a.log.Error("storefront item fetch failed",
				zap.String("slug", slug), zap.Int64("categoryId", cat.ID), zap.Error(err))
			return nil, ErrStorefrontNotFound
		}

		visible := make([]models.Item, 0, len(items))
		for _, item := range items {
			if item.IsActive {
				visible = append(visible, item)
			}
		}
		sort.Slice(visible, func(i, j int) bool {
			return visible[i].Name < visible[j].Name
		})

		doc.Categories = append(doc.Categories, models.StorefrontCategory{
			Category: cat,
			Items:    visible,
		})
	}

	sort.SliceStable(doc.Categories, func(i, j int) bool {
		ci, cj := doc.Categories[i].Category, doc.Categories[j].Category
		if ci.SortOrder != cj.SortOrder {
			return ci.SortOrder < cj.SortOrder
		}
		return ci.Name < cj.Name
	})

	return doc, nil
}
