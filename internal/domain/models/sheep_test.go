package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSheep() Sheep {
	return Sheep{
		ID:          "s-1",
		UserID:      "u-1",
		BreederID:   "b-1",
		TagID:       "04-DZ-889",
		Breed:       BreedHamra,
		AgeType:     AgeMonths,
		AgeInMonths: 18,
		State:       StateEmpty,
	}
}

func TestNormalizeClearsMonthsForDentition(t *testing.T) {
	s := validSheep()
	s.AgeType = AgeDentition
	s.Dentition = Dentition2
	s.AgeInMonths = 14 // stale value from a previous toggle

	s.Normalize()

	assert.Zero(t, s.AgeInMonths)
	assert.Equal(t, Dentition2, s.Dentition)
	require.NoError(t, s.Validate())
}

func TestNormalizeClearsDentitionForMonths(t *testing.T) {
	s := validSheep()
	s.Dentition = Dentition8

	s.Normalize()

	assert.Empty(t, s.Dentition)
	assert.Equal(t, 18, s.AgeInMonths)
	require.NoError(t, s.Validate())
}

func TestNormalizeDefaultsUnknownAgeTypeToMonths(t *testing.T) {
	s := validSheep()
	s.AgeType = ""

	s.Normalize()

	assert.Equal(t, AgeMonths, s.AgeType)
}

func TestValidateRejectsBadRecords(t *testing.T) {
	missingTag := validSheep()
	missingTag.TagID = ""
	assert.Error(t, missingTag.Validate())

	zeroAge := validSheep()
	zeroAge.AgeInMonths = 0
	assert.Error(t, zeroAge.Validate())

	badDentition := validSheep()
	badDentition.AgeType = AgeDentition
	badDentition.AgeInMonths = 0
	badDentition.Dentition = "3_DENTS"
	assert.Error(t, badDentition.Validate())

	badScore := validSheep()
	badScore.MammaryScore = 11
	assert.Error(t, badScore.Validate())

	unknownTrait := validSheep()
	unknownTrait.Measurements = map[string]TraitValue{"tour_de_cou": Numeric(40)}
	assert.Error(t, unknownTrait.Validate())
}

func TestValidateAcceptsFullRecord(t *testing.T) {
	s := validSheep()
	s.Measurements = map[string]TraitValue{
		"longueur_corps": Numeric(78.5),
		"hauteur_garrot": Numeric(72),
		"conformation":   Categorical("BONNE"),
	}
	s.MammaryTraits = map[string]TraitValue{
		"symetrie":           Categorical("BONNE"),
		"profondeur_mamelle": Numeric(16),
	}
	s.MammaryScore = 8

	require.NoError(t, s.Validate())
}

func TestAgeLabel(t *testing.T) {
	s := validSheep()
	assert.Equal(t, "18 mois", s.AgeLabel())

	s.AgeType = AgeDentition
	s.Dentition = Dentition4
	assert.Equal(t, "4 DENTS", s.AgeLabel())
}
