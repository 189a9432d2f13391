package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultProductImage is used when a product is saved without an image.
const DefaultProductImage = "https://picsum.photos/400/300"

// Product represents an item on the menu.
// CategoryID is expected to reference a Category but this is not enforced.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"categoryId"`
	IsAvailable bool            `json:"isAvailable"`
}

// ProductDraft is the admin form for creating or editing a product.
// Optional fields left empty receive defaults when the draft is saved.
type ProductDraft struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	CategoryID  string `json:"categoryId"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return newValidationError("name", "Informe o nome do produto.")
	}
	_, err := d.price()
	return err
}

func (d ProductDraft) price() (decimal.Decimal, error) {
	raw := strings.TrimSpace(d.Price)
	if raw == "" {
		return decimal.Zero, newValidationError("price", "Informe o preço do produto.")
	}
	// Accept the comma decimal separator used on the menu.
	price, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, newValidationError("price", "Preço inválido.")
	}
	if price.IsNegative() {
		return decimal.Zero, newValidationError("price", "O preço não pode ser negativo.")
	}
	return price, nil
}

// ToProduct converts a validated draft into a product with the given id.
// defaultCategoryID is used when the draft names no category.
func (d ProductDraft) ToProduct(id, defaultCategoryID string) (Product, error) {
	if err := d.Validate(); err != nil {
		return Product{}, err
	}
	price, _ := d.price()

	p := Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Image:       d.Image,
		CategoryID:  d.CategoryID,
		IsAvailable: true,
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	if p.CategoryID == "" {
		p.CategoryID = defaultCategoryID
	}
	if d.IsAvailable != nil {
		p.IsAvailable = *d.IsAvailable
	}
	return p, nil
}
