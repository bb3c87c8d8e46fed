package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service is a catalog entry a quotation can be requested against.
type Service struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Description string        `bson:"description" json:"description"`
	Category    string        `bson:"category" json:"category"`
	Price       float64       `bson:"price" json:"price"`
	Duration    string        `bson:"duration" json:"duration"`
	Features    []string      `bson:"features,omitempty" json:"features,omitempty"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	CreatedBy   bson.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
