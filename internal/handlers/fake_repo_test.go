package handlers_test

import (
	"context"
	"sort"
	"sync"

	"github.com/smartcard-app/smartcard-golang/internal/models"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
)

// fakeRepo is an in-memory repository.Repository. The slug uniqueness
// check under the shared mutex mirrors the database's unique index.
type fakeRepo struct {
	mu         sync.Mutex
	users      []*models.User
	stores     []*models.Store
	categories []*models.Category
	items      []*models.Item
	nextID     int64

	failAll error // when set, every call errors
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

// --- Users ---

func (f *fakeRepo) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.ID = f.id()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeRepo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// --- Stores ---

func (f *fakeRepo) CreateStore(_ context.Context, store *models.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for _, s := range f.stores {
		if s.Slug == store.Slug {
			return repository.ErrSlugTaken
		}
	}
	store.ID = f.id()
	f.stores = append(f.stores, store)
	return nil
}

func (f *fakeRepo) FindActiveStoreBySlug(_ context.Context, slug string) (*models.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, s := range f.stores {
		if s.Slug == slug && s.IsActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindStoreByUserID(_ context.Context, userID int64) (*models.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, s := range f.stores {
		if s.UserID == userID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdateStore(_ context.Context, store *models.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for _, s := range f.stores {
		if s.Slug == store.Slug && s.ID != store.ID {
			return repository.ErrSlugTaken
		}
	}
	for i, s := range f.stores {
		if s.ID == store.ID {
			copied := *store
			f.stores[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) DeleteStore(_ context.Context, storeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for i, s := range f.stores {
		if s.ID == storeID {
			f.stores = append(f.stores[:i], f.stores[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return false, f.failAll
	}
	for _, s := range f.stores {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// --- Categories ---

func (f *fakeRepo) CreateCategory(_ context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	category.ID = f.id()
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeRepo) FindActiveCategoriesByStore(_ context.Context, storeID int64) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.StoreID == storeID && c.IsActive {
			out = append(out, *c)
		}
	}
	sortCategories(out)
	return out, nil
}

func (f *fakeRepo) FindCategoriesByStore(_ context.Context, storeID int64) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	sortCategories(out)
	return out, nil
}

func sortCategories(cats []models.Category) {
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].Name < cats[j].Name
	})
}

func (f *fakeRepo) FindCategoryByID(_ context.Context, storeID, categoryID int64) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, c := range f.categories {
		if c.ID == categoryID && c.StoreID == storeID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) UpdateCategory(_ context.Context, storeID int64, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for i, c := range f.categories {
		if c.ID == category.ID && c.StoreID == storeID {
			copied := *category
			copied.StoreID = storeID
			f.categories[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) DeleteCategory(_ context.Context, storeID, categoryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for i, c := range f.categories {
		if c.ID == categoryID && c.StoreID == storeID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Items ---

func (f *fakeRepo) CreateItem(_ context.Context, storeID int64, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	owned := false
	for _, c := range f.categories {
		if c.ID == item.CategoryID && c.StoreID == storeID {
			owned = true
			break
		}
	}
	if !owned {
		return repository.ErrNotFound
	}
	item.ID = f.id()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) FindActiveItemsByCategory(_ context.Context, categoryID int64) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []models.Item
	for _, i := range f.items {
		if i.CategoryID == categoryID && i.IsActive {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeRepo) FindItemsByCategory(_ context.Context, storeID, categoryID int64) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []models.Item
	for _, i := range f.items {
		if i.CategoryID == categoryID {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (f *fakeRepo) FindItemByID(_ context.Context, storeID, itemID int64) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, i := range f.items {
		if i.ID != itemID {
			continue
		}
		for _, c := range f.categories {
			if c.ID == i.CategoryID && c.StoreID == storeID {
				copied := *i
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) UpdateItem(_ context.Context, storeID int64, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for idx, existing := range f.items {
		if existing.ID != item.ID {
			continue
		}
		for _, c := range f.categories {
			if c.ID == existing.CategoryID && c.StoreID == storeID {
				copied := *item
				copied.CategoryID = existing.CategoryID
				f.items[idx] = &copied
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) DeleteItem(_ context.Context, storeID, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for idx, existing := range f.items {
		if existing.ID != itemID {
			continue
		}
		for _, c := range f.categories {
			if c.ID == existing.CategoryID && c.StoreID == storeID {
				f.items = append(f.items[:idx], f.items[idx+1:]...)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}
