package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraitValueJSONRoundTrip(t *testing.T) {
	in := map[string]TraitValue{
		"hauteur_garrot": Numeric(72.5),
		"conformation":   Categorical("BONNE"),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hauteur_garrot":72.5,"conformation":"BONNE"}`, string(data))

	var out map[string]TraitValue
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestValidateTraits(t *testing.T) {
	ok := map[string]TraitValue{
		"longueur_corps": Numeric(80),
		"conformation":   Categorical("MOYENNE"),
	}
	require.NoError(t, ValidateTraits(ok, MorphoTraits))

	unknown := map[string]TraitValue{"inconnu": Numeric(1)}
	assert.ErrorContains(t, ValidateTraits(unknown, MorphoTraits), "unknown trait")

	wrongKind := map[string]TraitValue{"longueur_corps": Categorical("LONGUE")}
	assert.ErrorContains(t, ValidateTraits(wrongKind, MorphoTraits), "expected numeric")

	badCategory := map[string]TraitValue{"symetrie": Categorical("PARFAITE")}
	assert.ErrorContains(t, ValidateTraits(badCategory, MammaryTraits), "not allowed")
}

func TestMergeIntoKeepsManualEntries(t *testing.T) {
	s := validSheep()
	s.Measurements = map[string]TraitValue{"longueur_corps": Numeric(75)}

	result := AnalysisResult{
		CoatColor: "blanche tête rouge",
		Measurements: map[string]TraitValue{
			"hauteur_garrot": Numeric(70),
		},
		Feedback: "Bonne conformation générale.",
	}
	result.MergeInto(&s)

	assert.Equal(t, Numeric(75), s.Measurements["longueur_corps"])
	assert.Equal(t, Numeric(70), s.Measurements["hauteur_garrot"])
	assert.Equal(t, "blanche tête rouge", s.CoatColor)
	assert.Equal(t, "Bonne conformation générale.", s.Feedback)
}
