package publishers

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/produto-client/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Product   domain.Product `json:"product"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// NewEvent constructs an Event for a product fetched from source.
func NewEvent(source string, product domain.Product) Event {
	return Event{
		ID:        uuid.NewString(),
		Source:    source,
		Product:   product,
		FetchedAt: time.Now().UTC(),
	}
}

// ProductIDAttr is the product id rendered for message attributes.
func (e Event) ProductIDAttr() string {
	return strconv.Itoa(e.Product.ID)
}
