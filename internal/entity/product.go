package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product é item de estoque do ponto de venda (cremes, cílios, agulhas...)
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Stock      int       `json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewProduct(name string, priceCents, stock int) *Product {
	return &Product{
		ID:         uuid.New().String(),
		Name:       name,
		PriceCents: priceCents,
		Stock:      stock,
		CreatedAt:  time.Now(),
	}
}
