package models

import "github.com/shopspring/decimal"

// SeedCategories is the category set written on first run.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Hambúrgueres", Slug: "hamburgueres"},
		{ID: "2", Name: "Pizzas", Slug: "pizzas"},
		{ID: "3", Name: "Salgados", Slug: "salgados"},
		{ID: "4", Name: "Macarrão", Slug: "macarrao"},
		{ID: "5", Name: "Sucos", Slug: "sucos"},
		{ID: "6", Name: "Refrigerantes", Slug: "refrigerantes"},
		{ID: "7", Name: "Cervejas", Slug: "cervejas"},
	}
}

// SeedProducts is the product set written on first run.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "101",
			Name:        "X-Bacon Supremo",
			Description: "Pão brioche, 2 blends de 150g, muito bacon crocante, queijo cheddar e maionese da casa.",
			Price:       decimal.RequireFromString("32.90"),
			Image:       "https://picsum.photos/400/300?random=1",
			CategoryID:  "1",
			IsAvailable: true,
		},
		{
			ID:          "102",
			Name:        "Smash Salad",
			Description: "Pão de batata, blend de 100g, alface americana, tomate, cebola roxa e queijo prato.",
			Price:       decimal.RequireFromString("24.50"),
			Image:       "https://picsum.photos/400/300?random=2",
			CategoryID:  "1",
			IsAvailable: true,
		},
		{
			ID:          "103",
			Name:        "Pizza Calabresa",
			Description: "Massa fina, molho de tomate, mussarela, calabresa fatiada e cebola.",
			Price:       decimal.RequireFromString("45.00"),
			Image:       "https://picsum.photos/400/300?random=3",
			CategoryID:  "2",
			IsAvailable: true,
		},
		{
			ID:          "104",
			Name:        "Suco de Laranja Natural",
			Description: "500ml de suco espremido na hora. Sem açúcar.",
			Price:       decimal.RequireFromString("12.00"),
			Image:       "https://picsum.photos/400/300?random=4",
			CategoryID:  "5",
			IsAvailable: true,
		},
		{
			ID:          "105",
			Name:        "Coca-Cola Lata",
			Description: "350ml gelada.",
			Price:       decimal.RequireFromString("6.00"),
			Image:       "https://picsum.photos/400/300?random=5",
			CategoryID:  "6",
			IsAvailable: true,
		},
		{
			ID:          "106",
			Name:        "Heineken Long Neck",
			Description: "330ml. Produto para maiores de 18 anos.",
			Price:       decimal.RequireFromString("14.00"),
			Image:       "https://picsum.photos/400/300?random=6",
			CategoryID:  "7",
			IsAvailable: true,
		},
	}
}
