package models

import (
	"context"
	"sync"

	"github.com/burgerhub/menu-ordering/storage"
	"github.com/google/uuid"
)

// CatalogRepository owns the persisted categories and products. Every
// mutation rewrites the whole collection before returning.
type CatalogRepository struct {
	mu    sync.Mutex
	docs  storage.Documents
	newID func() string
}

func NewCatalogRepository(docs storage.Documents) *CatalogRepository {
	return &CatalogRepository{
		docs:  docs,
		newID: uuid.NewString,
	}
}

// Initialize writes the seed catalog for any collection that has never been
// stored. Existing documents, even empty ones, are left untouched.
func (r *CatalogRepository) Initialize(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seeded := false
	ok, err := documentExists(ctx, r.docs, storage.KeyCategories)
	if err != nil {
		return false, err
	}
	if !ok {
		if err := saveCollection(ctx, r.docs, storage.KeyCategories, SeedCategories()); err != nil {
			return false, err
		}
		seeded = true
	}

	ok, err = documentExists(ctx, r.docs, storage.KeyProducts)
	if err != nil {
		return seeded, err
	}
	if !ok {
		if err := saveCollection(ctx, r.docs, storage.KeyProducts, SeedProducts()); err != nil {
			return seeded, err
		}
		seeded = true
	}
	return seeded, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]Category, error) {
	return loadCollection[Category](ctx, r.docs, storage.KeyCategories)
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	return loadCollection[Product](ctx, r.docs, storage.KeyProducts)
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// UpsertCategory replaces the category with the same id in place or appends
// it. The slug is always recomputed from the name.
func (r *CatalogRepository) UpsertCategory(ctx context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.Slug = Slugify(c.Name)
	categories, err := loadCollection[Category](ctx, r.docs, storage.KeyCategories)
	if err != nil {
		return Category{}, err
	}
	categories = upsert(categories, c, func(x Category) string { return x.ID })
	if err := saveCollection(ctx, r.docs, storage.KeyCategories, categories); err != nil {
		return Category{}, err
	}
	return c, nil
}

// UpsertProduct replaces the product with the same id in place or appends it.
func (r *CatalogRepository) UpsertProduct(ctx context.Context, p Product) (Product, error) {
	if p.Price.IsNegative() {
		return Product{}, newValidationError("price", "O preço não pode ser negativo.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := loadCollection[Product](ctx, r.docs, storage.KeyProducts)
	if err != nil {
		return Product{}, err
	}
	products = upsert(products, p, func(x Product) string { return x.ID })
	if err := saveCollection(ctx, r.docs, storage.KeyProducts, products); err != nil {
		return Product{}, err
	}
	return p, nil
}

// SaveCategoryDraft validates the draft, assigns an id to new categories and upserts it.
func (r *CatalogRepository) SaveCategoryDraft(ctx context.Context, d CategoryDraft) (Category, error) {
	if err := d.Validate(); err != nil {
		return Category{}, err
	}
	id := d.ID
	if id == "" {
		id = r.newID()
	}
	return r.UpsertCategory(ctx, Category{ID: id, Name: d.Name})
}

// SaveProductDraft validates the draft, applies defaults and upserts it.
// Products without a category fall into the first stored category.
func (r *CatalogRepository) SaveProductDraft(ctx context.Context, d ProductDraft) (Product, error) {
	if err := d.Validate(); err != nil {
		return Product{}, err
	}

	defaultCategoryID := ""
	if d.CategoryID == "" {
		categories, err := r.ListCategories(ctx)
		if err != nil {
			return Product{}, err
		}
		if len(categories) > 0 {
			defaultCategoryID = categories[0].ID
		}
	}

	id := d.ID
	if id == "" {
		id = r.newID()
	}
	p, err := d.ToProduct(id, defaultCategoryID)
	if err != nil {
		return Product{}, err
	}
	return r.UpsertProduct(ctx, p)
}

// DeleteCategory removes the category. Products that reference it keep their
// dangling CategoryID. Unknown ids are a no-op.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := loadCollection[Category](ctx, r.docs, storage.KeyCategories)
	if err != nil {
		return err
	}
	kept, removed := without(categories, func(c Category) bool { return c.ID == id })
	if !removed {
		return nil
	}
	return saveCollection(ctx, r.docs, storage.KeyCategories, kept)
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := loadCollection[Product](ctx, r.docs, storage.KeyProducts)
	if err != nil {
		return err
	}
	kept, removed := without(products, func(p Product) bool { return p.ID == id })
	if !removed {
		return nil
	}
	return saveCollection(ctx, r.docs, storage.KeyProducts, kept)
}

func upsert[T any](items []T, item T, key func(T) string) []T {
	for i := range items {
		if key(items[i]) == key(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return kept, len(kept) != len(items)
}
