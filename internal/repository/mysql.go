package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/smartcard-app/smartcard-golang/internal/models"
)

// MySQL implements Repository on top of a database/sql MySQL pool.
type MySQL struct {
	DB *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{DB: db}
}

// isDuplicateEntry reports whether err is a MySQL unique-key violation
// (error 1062). This is how a lost slug race surfaces.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// --- Users ---

func (r *MySQL) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrEmailTaken
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *MySQL) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, created_at, updated_at
		FROM users WHERE email = ?`

	var user models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// --- Stores ---

func (r *MySQL) CreateStore(ctx context.Context, store *models.Store) error {
	query := `
		INSERT INTO stores
		(user_id, slug, name, description, whatsapp, address, primary_color,
		 business_type, requires_address, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctx, query,
		store.UserID, store.Slug, store.Name, store.Description,
		store.Whatsapp, store.Address, store.PrimaryColor, store.BusinessType,
		store.RequiresAddress, store.IsActive, store.CreatedAt, store.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrSlugTaken
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	store.ID = id
	return nil
}

func (r *MySQL) FindActiveStoreBySlug(ctx context.Context, slug string) (*models.Store, error) {
	query := `
		SELECT id, user_id, slug, name, description, whatsapp, address,
		       primary_color, business_type, requires_address, is_active,
		       created_at, updated_at
		FROM stores WHERE slug = ? AND is_active = TRUE`

	return r.scanStore(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *MySQL) FindStoreByUserID(ctx context.Context, userID int64) (*models.Store, error) {
	query := `
		SELECT id, user_id, slug, name, description, whatsapp, address,
		       primary_color, business_type, requires_address, is_active,
		       created_at, updated_at
		FROM stores WHERE user_id = ?`

	return r.scanStore(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *MySQL) scanStore(row *sql.Row) (*models.Store, error) {
	var store models.Store
	err := row.Scan(
		&store.ID, &store.UserID, &store.Slug, &store.Name, &store.Description,
		&store.Whatsapp, &store.Address, &store.PrimaryColor, &store.BusinessType,
		&store.RequiresAddress, &store.IsActive, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *MySQL) UpdateStore(ctx context.Context, store *models.Store) error {
	query := `
		UPDATE stores
		SET slug = ?, name = ?, description = ?, whatsapp = ?, address = ?,
		    primary_color = ?, business_type = ?, requires_address = ?,
		    is_active = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.DB.ExecContext(ctx, query,
		store.Slug, store.Name, store.Description, store.Whatsapp, store.Address,
		store.PrimaryColor, store.BusinessType, store.RequiresAddress,
		store.IsActive, store.UpdatedAt, store.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrSlugTaken
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQL) DeleteStore(ctx context.Context, storeID int64) error {
	// categories and items go with it (ON DELETE CASCADE)
	result, err := r.DB.ExecContext(ctx, "DELETE FROM stores WHERE id = ?", storeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQL) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM stores WHERE slug = ?)", slug).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// --- Categories ---

func (r *MySQL) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories
		(store_id, name, description, sort_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctx, query,
		category.StoreID, category.Name, category.Description,
		category.SortOrder, category.IsActive, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (r *MySQL) FindActiveCategoriesByStore(ctx context.Context, storeID int64) ([]models.Category, error) {
	query := `
		SELECT id, store_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories
		WHERE store_id = ? AND is_active = TRUE
		ORDER BY sort_order ASC, name ASC`

	return r.queryCategories(ctx, query, storeID)
}

func (r *MySQL) FindCategoriesByStore(ctx context.Context, storeID int64) ([]models.Category, error) {
	query := `
		SELECT id, store_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories
		WHERE store_id = ?
		ORDER BY sort_order ASC, name ASC`

	return r.queryCategories(ctx, query, storeID)
}

func (r *MySQL) queryCategories(ctx context.Context, query string, args ...interface{}) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(
			&cat.ID, &cat.StoreID, &cat.Name, &cat.Description,
			&cat.SortOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *MySQL) FindCategoryByID(ctx context.Context, storeID, categoryID int64) (*models.Category, error) {
	query := `
		SELECT id, store_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories WHERE id = ? AND store_id = ?`

	var cat models.Category
	err := r.DB.QueryRowContext(ctx, query, categoryID, storeID).Scan(
		&cat.ID, &cat.StoreID, &cat.Name, &cat.Description,
		&cat.SortOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *MySQL) UpdateCategory(ctx context.Context, storeID int64, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = ?, description = ?, sort_order = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND store_id = ?`

	result, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Description, category.SortOrder,
		category.IsActive, category.UpdatedAt, category.ID, storeID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQL) DeleteCategory(ctx context.Context, storeID, categoryID int64) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND store_id = ?", categoryID, storeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Items ---

func (r *MySQL) CreateItem(ctx context.Context, storeID int64, item *models.Item) error {
	// Ownership check rides along in the INSERT ... SELECT: the row only
	// lands if the target category belongs to the caller's store.
	query := `
		INSERT INTO items
		(category_id, name, description, price_cents, image_url, is_active, created_at, updated_at)
		SELECT c.id, ?, ?, ?, ?, ?, ?, ?
		FROM categories c WHERE c.id = ? AND c.store_id = ?`

	result, err := r.DB.ExecContext(ctx, query,
		item.Name, item.Description, item.PriceCents, item.ImageURL,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
		item.CategoryID, storeID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

func (r *MySQL) FindActiveItemsByCategory(ctx context.Context, categoryID int64) ([]models.Item, error) {
	query := `
		SELECT id, category_id, name, description, price_cents, image_url,
		       is_active, created_at, updated_at
		FROM items
		WHERE category_id = ? AND is_active = TRUE
		ORDER BY name ASC`

	return r.queryItems(ctx, query, categoryID)
}

func (r *MySQL) FindItemsByCategory(ctx context.Context, storeID, categoryID int64) ([]models.Item, error) {
	query := `
		SELECT i.id, i.category_id, i.name, i.description, i.price_cents,
		       i.image_url, i.is_active, i.created_at, i.updated_at
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.category_id = ? AND c.store_id = ?
		ORDER BY i.name ASC`

	return r.queryItems(ctx, query, categoryID, storeID)
}

func (r *MySQL) queryItems(ctx context.Context, query string, args ...interface{}) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.CategoryID, &item.Name, &item.Description,
			&item.PriceCents, &item.ImageURL, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MySQL) FindItemByID(ctx context.Context, storeID, itemID int64) (*models.Item, error) {
	query := `
		SELECT i.id, i.category_id, i.name, i.description, i.price_cents,
		       i.image_url, i.is_active, i.created_at, i.updated_at
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = ? AND c.store_id = ?`

	var item models.Item
	err := r.DB.QueryRowContext(ctx, query, itemID, storeID).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.Description,
		&item.PriceCents, &item.ImageURL, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MySQL) UpdateItem(ctx context.Context, storeID int64, item *models.Item) error {
	query := `
		UPDATE items i
		JOIN categories c ON c.id = i.category_id
		SET i.name = ?, i.description = ?, i.price_cents = ?, i.image_url = ?,
		    i.is_active = ?, i.updated_at = ?
		WHERE i.id = ? AND c.store_id = ?`

	result, err := r.DB.ExecContext(ctx, query,
		item.Name, item.Description, item.PriceCents, item.ImageURL,
		item.IsActive, item.UpdatedAt, item.ID, storeID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQL) DeleteItem(ctx context.Context, storeID, itemID int64) error {
	query := `
		DELETE i FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = ? AND c.store_id = ?`

	result, err := r.DB.ExecContext(ctx, query, itemID, storeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
