package models

// Breeder is an operating unit (a farm) owned by exactly one user. Animals,
// time-series records and ingredient prices all hang off a breeder by id.
type Breeder struct {
	ID       string `bson:"_id" json:"id"`
	UserID   string `bson:"user_id" json:"userId"`
	Name     string `bson:"name" json:"name"`
	Location string `bson:"location" json:"location,omitempty"`
}
