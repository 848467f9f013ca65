package handler

import "math"

// --- Request types ---

type createSweetRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty"`
	Category    string  `json:"category"    validate:"required,oneof=chocolate candy cookie cake pastry ice_cream other"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Quantity    int64   `json:"quantity"    validate:"gte=0"`
	ImageURL    string  `json:"image_url"   validate:"omitempty,url"`
}

// updateSweetRequest carries a partial update: absent fields stay untouched.
type updateSweetRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"    validate:"omitempty,oneof=chocolate candy cookie cake pastry ice_cream other"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Quantity    *int64   `json:"quantity"    validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"   validate:"omitempty,url"`
}

// purchaseRequest uses a pointer so an absent quantity defaults to 1 while an
// explicit zero still reaches the service and is rejected there.
type purchaseRequest struct {
	Quantity *int64 `json:"quantity"`
}

type restockRequest struct {
	Quantity int64 `json:"quantity"`
}

// searchQuery binds the catalog search parameters. minPrice may exceed
// maxPrice; the result is simply empty.
type searchQuery struct {
	Name     string   `query:"name"`
	Category string   `query:"category" validate:"omitempty,oneof=chocolate candy cookie cake pastry ice_cream other"`
	MinPrice *float64 `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `query:"maxPrice" validate:"omitempty,gte=0"`
}

// hasTwoDecimalPrecision reports whether p carries at most two decimal
// places. Prices are stored exactly as given, so stray sub-cent fractions are
// rejected at the boundary.
func hasTwoDecimalPrecision(p float64) bool {
	scaled := p * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
