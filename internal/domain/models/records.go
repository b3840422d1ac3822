package models

import "time"

// The four time-series record kinds are append-only from the application's
// point of view: they are added and listed, never edited or deleted.

// HealthRecord captures a vaccination, treatment or other veterinary event.
type HealthRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	BreederID string    `bson:"breeder_id" json:"breederId"`
	SheepTag  string    `bson:"sheep_tag,omitempty" json:"sheepTag,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
	EventType string    `bson:"event_type" json:"eventType"`
	Product   string    `bson:"product,omitempty" json:"product,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProductionRecord captures a milk or weight yield measurement.
type ProductionRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	BreederID string    `bson:"breeder_id" json:"breederId"`
	SheepTag  string    `bson:"sheep_tag,omitempty" json:"sheepTag,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
	MilkL     float64   `bson:"milk_l,omitempty" json:"milkL,omitempty"`
	WeightKg  float64   `bson:"weight_kg,omitempty" json:"weightKg,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ReproductionRecord captures a breeding event (lutte, mise bas, sevrage).
type ReproductionRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	BreederID string    `bson:"breeder_id" json:"breederId"`
	EweTag    string    `bson:"ewe_tag,omitempty" json:"eweTag,omitempty"`
	RamTag    string    `bson:"ram_tag,omitempty" json:"ramTag,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
	EventType string    `bson:"event_type" json:"eventType"`
	LambCount int       `bson:"lamb_count,omitempty" json:"lambCount,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NutritionRecord captures a feed ration distributed to a lot.
type NutritionRecord struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	BreederID  string    `bson:"breeder_id" json:"breederId"`
	Date       time.Time `bson:"date" json:"date"`
	Ingredient string    `bson:"ingredient" json:"ingredient"`
	QuantityKg float64   `bson:"quantity_kg" json:"quantityKg"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
}
