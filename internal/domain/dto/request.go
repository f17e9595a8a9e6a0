// Package dto defines the request and response shapes of the HTTP API.
//
// Requests carry gin binding tags for structural checks and a Validate method
// for the rules binding tags cannot express.
package dto

import (
	"strings"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidTarget is returned when the recommendation target is not positive.
	ErrInvalidTarget = &ValidationError{Field: "target", Message: "must be a positive integer"}
	// ErrEmptyCatalog is returned when a stateless recommendation has no items.
	ErrEmptyCatalog = &ValidationError{Field: "catalog", Message: "must contain at least one item"}
	// ErrInvalidQuantity is returned for non-positive purchase quantities.
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Message: "must be a positive integer"}
)

// CatalogItemRequest is one catalog entry supplied inline to the calculator.
//
// @Description Catalog entry used for a stateless calculation
type CatalogItemRequest struct {
	ID       string `json:"id" binding:"required" example:"americano"`
	Name     string `json:"name" binding:"required" example:"Americano"`
	Price    int    `json:"price" binding:"gte=0" example:"4000"`
	Category string `json:"category,omitempty" example:"Coffee"`
} // @name CatalogItemRequest

// CalculateRequest is the body of POST /api/recommendations/calculate.
//
// @Description Request to find menu combinations that spend a target amount
// @Example {"target": 8000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}]}
type CalculateRequest struct {
	// Target is the amount to spend. Must be greater than 0.
	Target int `json:"target" binding:"required,gt=0" example:"8000" minimum:"1"`
	// Catalog is the list of items to combine.
	Catalog []CatalogItemRequest `json:"catalog" binding:"required,min=1,dive"`
	// MaxResults limits exact results. Defaults to the server setting.
	MaxResults int `json:"max_results,omitempty" binding:"omitempty,gt=0,lte=50" example:"5"`
	// Tolerance is how far below Target the approximate search may go.
	Tolerance *int `json:"tolerance,omitempty" binding:"omitempty,gte=0" example:"100"`
} // @name CalculateRequest

// Validate performs checks beyond the binding tags.
func (r *CalculateRequest) Validate() error {
	if r.Target <= 0 {
		return ErrInvalidTarget
	}
	if len(r.Catalog) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(r.Catalog))
	for _, item := range r.Catalog {
		if item.Price < 0 {
			return &ValidationError{Field: "catalog.price", Message: "must not be negative"}
		}
		if _, dup := seen[item.ID]; dup {
			return &ValidationError{Field: "catalog.id", Message: "duplicate id " + item.ID}
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// MenuItems converts the inline catalog into domain items.
func (r *CalculateRequest) MenuItems() []model.MenuItem {
	items := make([]model.MenuItem, len(r.Catalog))
	for i, c := range r.Catalog {
		items[i] = model.MenuItem{ID: c.ID, Name: c.Name, Price: c.Price, Category: c.Category}
	}
	return items
}

// MenuRequest is the body for creating or replacing a menu item.
//
// @Description Menu item to create or update
// @Example {"name": "Americano", "price": 4000, "category": "Coffee"}
type MenuRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Americano"`
	Price    int    `json:"price" binding:"gte=0" example:"4000"`
	Category string `json:"category,omitempty" binding:"max=50" example:"Coffee"`
} // @name MenuRequest

// Validate trims the name and rejects blank names and negative prices.
func (r *MenuRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be blank"}
	}
	if r.Price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	return nil
}

// ImportMenusRequest is the body of POST /api/menus/import.
//
// @Description Bulk menu import
type ImportMenusRequest struct {
	Menus []MenuRequest `json:"menus" binding:"required,min=1,max=1000,dive"`
} // @name ImportMenusRequest

// Validate validates every menu in the batch.
func (r *ImportMenusRequest) Validate() error {
	if len(r.Menus) == 0 {
		return &ValidationError{Field: "menus", Message: "must contain at least one item"}
	}
	for i := range r.Menus {
		if err := r.Menus[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PurchaseRequest is the body for recording a purchase.
//
// @Description Purchase to record
// @Example {"menu_id": "65f1c0e2a1b2c3d4e5f60718", "quantity": 2, "memo": "team coffee"}
type PurchaseRequest struct {
	MenuID   string `json:"menu_id" binding:"required" example:"65f1c0e2a1b2c3d4e5f60718"`
	Quantity int    `json:"quantity" binding:"required,gt=0" example:"2"`
	Memo     string `json:"memo,omitempty" binding:"max=500" example:"team coffee"`
} // @name PurchaseRequest

// Validate rejects non-positive quantities.
func (r *PurchaseRequest) Validate() error {
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// UpdatePurchaseRequest is the body of PUT /api/purchases/:id.
//
// @Description Purchase fields to change
type UpdatePurchaseRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0" example:"1"`
	Memo     string `json:"memo,omitempty" binding:"max=500"`
} // @name UpdatePurchaseRequest

// Validate rejects non-positive quantities.
func (r *UpdatePurchaseRequest) Validate() error {
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// BatchPurchaseRequest records every item of a chosen combination.
//
// @Description Purchase a whole combination
// @Example {"items": [{"menu_id": "65f1c0e2a1b2c3d4e5f60718", "quantity": 2}], "memo": "recommended"}
type BatchPurchaseRequest struct {
	Items []PurchaseRequest `json:"items" binding:"required,min=1,max=50,dive"`
	Memo  string            `json:"memo,omitempty" binding:"max=500"`
} // @name BatchPurchaseRequest

// Validate validates every line item.
func (r *BatchPurchaseRequest) Validate() error {
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Message: "must contain at least one item"}
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
