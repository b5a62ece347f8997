package domain

import "fmt"

// Product is a catalog entry as returned by the Produto API.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// String renders the product as a single human-readable line.
func (p Product) String() string {
	return fmt.Sprintf("ID: %d, Nome: %s, Descrição: %s", p.ID, p.Name, p.Description)
}
