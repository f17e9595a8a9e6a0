package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase records a user buying a menu item. TotalPrice is always
// Price * Quantity.
//
// @Description Purchase record
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	MenuID      string             `bson:"menu_id" json:"menu_id" example:"65f1c0e2a1b2c3d4e5f60718"`
	MenuName    string             `bson:"menu_name" json:"menu_name" example:"Americano"`
	Category    string             `bson:"category" json:"category" example:"Coffee"`
	Price       int                `bson:"price" json:"price" example:"4000"`
	Quantity    int                `bson:"quantity" json:"quantity" example:"1"`
	TotalPrice  int                `bson:"total_price" json:"total_price" example:"4000"`
	Memo        string             `bson:"memo,omitempty" json:"memo,omitempty"`
	PurchasedAt time.Time          `bson:"purchased_at" json:"purchased_at"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Recalculate refreshes TotalPrice from Price and Quantity.
func (p *Purchase) Recalculate() {
	p.TotalPrice = p.Price * p.Quantity
}
