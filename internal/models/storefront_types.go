package models

// StorefrontDocument is the assembled public view of one store:
// the store plus its visible category/item tree. It is built per-request
// and never persisted. Only active entities appear in it.
type StorefrontDocument struct {
	Store      Store                `json:"store"`
	Categories []StorefrontCategory `json:"categories"`
}

// StorefrontCategory pairs a category with its visible items.
// Items is always non-nil: a category with no active items renders
// as an empty section, it is not dropped from the document.
type StorefrontCategory struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// ItemCount returns the number of visible items across all categories.
func (d *StorefrontDocument) ItemCount() int {
	total := 0
	for _, c := range d.Categories {
		total += len(c.Items)
	}
	return total
}
