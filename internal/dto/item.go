package dto

import (
	"fmt"
	"strings"

	"campusswap/internal/domain"
)

// DefaultImages is stored when a listing arrives without images.
const DefaultImages = "[]"

type ItemRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       OpaqueText `json:"price"`
	Category    string     `json:"category"`
	Images      OpaqueText `json:"images"`
}

// Fields validates the request and returns the columns to persist.
func (r ItemRequest) Fields() (domain.ItemFields, error) {
	f := domain.ItemFields{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Price:       strings.TrimSpace(string(r.Price)),
		Category:    strings.TrimSpace(r.Category),
		Images:      string(r.Images),
	}
	var missing []string
	if f.Title == "" {
		missing = append(missing, "title")
	}
	if f.Description == "" {
		missing = append(missing, "description")
	}
	if f.Price == "" {
		missing = append(missing, "price")
	}
	if f.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return domain.ItemFields{}, fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if strings.TrimSpace(f.Images) == "" {
		f.Images = DefaultImages
	}
	return f, nil
}

type DeleteResponse struct {
	Message string `json:"message"`
}
