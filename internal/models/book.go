package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Book is the managed catalog resource.
type Book struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name   string             `bson:"name" json:"name"`
	Author string             `bson:"author" json:"author"`
	Price  float64            `bson:"price" json:"price"`
}
