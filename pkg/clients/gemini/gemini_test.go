package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

func TestParseResultPlainJSON(t *testing.T) {
	result, err := parseResult(`{
		"measurements": {"hauteur_garrot": 72.5, "conformation": "BONNE"},
		"robe_couleur": "blanche",
		"feedback": "Bon standard Hamra."
	}`)
	require.NoError(t, err)

	assert.Equal(t, models.Numeric(72.5), result.Measurements["hauteur_garrot"])
	assert.Equal(t, models.Categorical("BONNE"), result.Measurements["conformation"])
	assert.Equal(t, "blanche", result.CoatColor)
	assert.Equal(t, "Bon standard Hamra.", result.Feedback)
}

func TestParseResultStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n{\"mammary_traits\": {\"symetrie\": \"BONNE\"}, \"mammary_score\": 8}\n```"
	result, err := parseResult(fenced)
	require.NoError(t, err)
	assert.Equal(t, 8, result.MammaryScore)
	assert.Equal(t, models.Categorical("BONNE"), result.MammaryTraits["symetrie"])

	bare := "```\n{\"feedback\": \"RAS\"}\n```"
	result, err = parseResult(bare)
	require.NoError(t, err)
	assert.Equal(t, "RAS", result.Feedback)
}

func TestParseResultRejectsProse(t *testing.T) {
	_, err := parseResult("Je ne peux pas analyser cette image.")
	assert.Error(t, err)
}

func TestBuildPromptListsTraitTable(t *testing.T) {
	profile := buildPrompt(models.AnalysisRequest{
		Mode: models.ModeProfile, Breed: models.BreedHamra, ReferenceObject: models.RefStick,
	})
	assert.Contains(t, profile, "HAMRA")
	assert.Contains(t, profile, "50 cm stick")
	assert.Contains(t, profile, "hauteur_garrot")
	assert.Contains(t, profile, "\"measurements\"")

	mammary := buildPrompt(models.AnalysisRequest{
		Mode: models.ModeMammary, Breed: models.BreedSidahou,
	})
	assert.Contains(t, mammary, "placement_trayons")
	assert.Contains(t, mammary, "mammary_score")
	assert.NotContains(t, mammary, "longueur_corps")
}
