package models

import "time"

// IngredientPrice is a priced feed ingredient scoped to a breeder. Prices
// carry no owning-user attribute; export resolves ownership through the
// breeder membership instead.
type IngredientPrice struct {
	ID         string    `bson:"_id" json:"id"`
	BreederID  string    `bson:"breeder_id" json:"breederId"`
	Ingredient string    `bson:"ingredient" json:"ingredient"`
	PricePerKg float64   `bson:"price_per_kg" json:"pricePerKg"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
