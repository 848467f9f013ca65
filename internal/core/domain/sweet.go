package domain

import (
	"errors"
	"time"
)

// Category classifies a catalog entry.
type Category string

const (
	CategoryChocolate Category = "chocolate"
	CategoryCandy     Category = "candy"
	CategoryCookie    Category = "cookie"
	CategoryCake      Category = "cake"
	CategoryPastry    Category = "pastry"
	CategoryIceCream  Category = "ice_cream"
	CategoryOther     Category = "other"
)

// validCategories is the closed set accepted by the catalog.
var validCategories = map[Category]struct{}{
	CategoryChocolate: {},
	CategoryCandy:     {},
	CategoryCookie:    {},
	CategoryCake:      {},
	CategoryPastry:    {},
	CategoryIceCream:  {},
	CategoryOther:     {},
}

var ErrSweetNotFound = errors.New("sweet not found")
var ErrInsufficientStock = errors.New("insufficient stock")
var ErrInvalidPurchaseAmount = errors.New("purchase amount must be positive")
var ErrInvalidRestockAmount = errors.New("restock amount must be positive")
var ErrInvalidCategory = errors.New("invalid category")

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}

// Sweet is a single catalog entry. Quantity is the only field subject to
// concurrent mutation; it must never go below zero.
type Sweet struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    Category  `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int64     `json:"quantity" bson:"quantity"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// InStock reports whether at least n units are available.
func (s *Sweet) InStock(n int64) bool {
	return s.Quantity >= n
}
