// Package model defines the core domain entities for the budget service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned to menus imported or created without a category.
const DefaultCategory = "기타"

// MenuItem is a purchasable catalog entry. During a combination search it is
// treated as immutable and identified by ID.
//
// @Description Purchasable menu item
// @Example {"id": "65f1c0e2a1b2c3d4e5f60718", "name": "Americano", "price": 4000, "category": "Coffee"}
type MenuItem struct {
	ID        string     `bson:"-" json:"id" example:"65f1c0e2a1b2c3d4e5f60718"`
	Name      string     `bson:"name" json:"name" example:"Americano"`
	Price     int        `bson:"price" json:"price" example:"4000"`
	Category  string     `bson:"category" json:"category" example:"Coffee"`
	CreatedBy string     `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// MenuDocument is the MongoDB representation of a MenuItem.
type MenuDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     int                `bson:"price"`
	Category  string             `bson:"category"`
	CreatedBy string             `bson:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// ToMenuItem converts the stored document into the catalog form.
func (d MenuDocument) ToMenuItem() MenuItem {
	createdAt, updatedAt := d.CreatedAt, d.UpdatedAt
	return MenuItem{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     d.Price,
		Category:  d.Category,
		CreatedBy: d.CreatedBy,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
}

// CategoryOrDefault returns the category, falling back to DefaultCategory.
func CategoryOrDefault(category string) string {
	if category == "" {
		return DefaultCategory
	}
	return category
}
