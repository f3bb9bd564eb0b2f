package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh identifier in ObjectId hex form. Both stores key
// documents by this representation so ids survive a store switch.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed ObjectId hex string.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
