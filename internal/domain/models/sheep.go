package models

import (
	"fmt"
	"strings"
	"time"
)

// Breed enumerates the Algerian sheep breeds tracked by the lab standards.
type Breed string

const (
	BreedHamra        Breed = "HAMRA"
	BreedOuledDjellal Breed = "OULED_DJELLAL"
	BreedRembi        Breed = "REMBI"
	BreedBerbere      Breed = "BERBERE"
	BreedSidahou      Breed = "SIDAHOU"
	BreedDMan         Breed = "D_MAN"
)

// AgeType selects which of the two age representations is meaningful for a
// sheep record: a month count or a dentition stage.
type AgeType string

const (
	AgeMonths    AgeType = "mois"
	AgeDentition AgeType = "dentition"
)

// DentitionStage is a discrete age proxy (tooth-count category) used for
// animals whose exact birth date is unknown.
type DentitionStage string

const (
	Dentition0 DentitionStage = "0_DENT"
	Dentition2 DentitionStage = "2_DENTS"
	Dentition4 DentitionStage = "4_DENTS"
	Dentition6 DentitionStage = "6_DENTS"
	Dentition8 DentitionStage = "8_DENTS"
)

// PhysioState enumerates physiological states of a ewe.
type PhysioState string

const (
	StateEmpty          PhysioState = "VIDE"
	StateEarlyPregnancy PhysioState = "GESTANTE_DEBUT"
	StateLatePregnancy  PhysioState = "GESTANTE_FIN"
	StateLactating      PhysioState = "ALLAITANTE"
	StateDry            PhysioState = "TARIE"
	StateGrowing        PhysioState = "EN_CROISSANCE"
)

// Sheep is the central zootechnical record tracked per physical animal. It
// embeds its measurement and mammary trait maps as value objects; those are
// never addressed as independent rows.
type Sheep struct {
	ID        string `bson:"_id" json:"id"`
	UserID    string `bson:"user_id" json:"userId"`
	BreederID string `bson:"breeder_id" json:"breederId"`
	TagID     string `bson:"tag_id" json:"tagId"`
	Breed     Breed  `bson:"race" json:"race"`
	CoatColor string `bson:"robe_couleur" json:"robe_couleur,omitempty"`

	// Exactly one of AgeInMonths / Dentition is meaningful, selected by
	// AgeType. Normalize clears the inactive one.
	AgeType     AgeType        `bson:"age_type" json:"ageType"`
	AgeInMonths int            `bson:"age_mois,omitempty" json:"age_mois,omitempty"`
	Dentition   DentitionStage `bson:"dentition,omitempty" json:"dentition,omitempty"`

	State PhysioState `bson:"etat_physiologique" json:"etat_physiologique"`

	Measurements  map[string]TraitValue `bson:"measurements,omitempty" json:"measurements,omitempty"`
	MammaryTraits map[string]TraitValue `bson:"mammary_traits,omitempty" json:"mammary_traits,omitempty"`
	MammaryScore  int                   `bson:"mammary_score,omitempty" json:"mammary_score,omitempty"`

	ImageURL  string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Feedback  string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Normalize zeroes whichever age representation the age type does not
// select, so a record never carries both a month count and a dentition
// stage. Last-set representation wins.
func (s *Sheep) Normalize() {
	switch s.AgeType {
	case AgeDentition:
		s.AgeInMonths = 0
	default:
		s.AgeType = AgeMonths
		s.Dentition = ""
	}
}

// AgeLabel renders the active age representation for tables and exports.
func (s *Sheep) AgeLabel() string {
	if s.AgeType == AgeDentition && s.Dentition != "" {
		return strings.ReplaceAll(string(s.Dentition), "_", " ")
	}
	return fmt.Sprintf("%d mois", s.AgeInMonths)
}

// Validate checks identification metadata and the trait maps against the
// closed trait tables.
func (s *Sheep) Validate() error {
	if s.TagID == "" {
		return fmt.Errorf("sheep %s: tag id is required", s.ID)
	}
	switch s.AgeType {
	case AgeMonths:
		if s.AgeInMonths <= 0 {
			return fmt.Errorf("sheep %s: age in months must be positive", s.ID)
		}
	case AgeDentition:
		switch s.Dentition {
		case Dentition0, Dentition2, Dentition4, Dentition6, Dentition8:
		default:
			return fmt.Errorf("sheep %s: unknown dentition stage %q", s.ID, s.Dentition)
		}
	default:
		return fmt.Errorf("sheep %s: unknown age type %q", s.ID, s.AgeType)
	}
	if s.MammaryScore < 0 || s.MammaryScore > 10 {
		return fmt.Errorf("sheep %s: mammary score %d out of range 0-10", s.ID, s.MammaryScore)
	}
	if err := ValidateTraits(s.Measurements, MorphoTraits); err != nil {
		return fmt.Errorf("sheep %s: %w", s.ID, err)
	}
	if err := ValidateTraits(s.MammaryTraits, MammaryTraits); err != nil {
		return fmt.Errorf("sheep %s: %w", s.ID, err)
	}
	return nil
}
