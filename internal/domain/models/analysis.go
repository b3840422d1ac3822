package models

// AnalysisMode selects which trait table an image analysis targets.
type AnalysisMode string

const (
	ModeProfile AnalysisMode = "PROFILE"
	ModeMammary AnalysisMode = "MAMMARY"
)

// ReferenceObject is the known-size object placed next to the animal so the
// vision model can convert pixels to centimeters.
type ReferenceObject string

const (
	RefNone   ReferenceObject = "AUCUN"
	RefBottle ReferenceObject = "BOUTEILLE"  // 1.5L bottle, 33 cm
	RefCard   ReferenceObject = "CARTE"      // bank card, 8.56 cm
	RefStick  ReferenceObject = "BATON_50CM" // graduated 50 cm stick
)

// AnalysisRequest is the input handed to the vision adapter.
type AnalysisRequest struct {
	ImageBase64     string          `json:"image" binding:"required"`
	Mode            AnalysisMode    `json:"mode" binding:"required"`
	Breed           Breed           `json:"race" binding:"required"`
	ReferenceObject ReferenceObject `json:"referenceObject"`

	// Draft, when present, receives the sanitized result so the caller gets
	// a completed record back instead of stitching fields together itself.
	Draft *Sheep `json:"sheep,omitempty"`
}

// AnalysisResult is the partial record returned by the vision adapter. Any
// subset of the fields may be filled; the caller merges it over manual
// entries without discarding them.
type AnalysisResult struct {
	CoatColor     string                `json:"robe_couleur,omitempty"`
	Measurements  map[string]TraitValue `json:"measurements,omitempty"`
	MammaryTraits map[string]TraitValue `json:"mammary_traits,omitempty"`
	MammaryScore  int                   `json:"mammary_score,omitempty"`
	Feedback      string                `json:"feedback,omitempty"`
}

// MergeInto overlays the analysis output on a sheep record, keeping every
// manually entered trait that the model did not re-estimate.
func (r *AnalysisResult) MergeInto(s *Sheep) {
	if r.CoatColor != "" {
		s.CoatColor = r.CoatColor
	}
	if len(r.Measurements) > 0 {
		if s.Measurements == nil {
			s.Measurements = make(map[string]TraitValue, len(r.Measurements))
		}
		for id, v := range r.Measurements {
			s.Measurements[id] = v
		}
	}
	if len(r.MammaryTraits) > 0 {
		if s.MammaryTraits == nil {
			s.MammaryTraits = make(map[string]TraitValue, len(r.MammaryTraits))
		}
		for id, v := range r.MammaryTraits {
			s.MammaryTraits[id] = v
		}
	}
	if r.MammaryScore > 0 {
		s.MammaryScore = r.MammaryScore
	}
	if r.Feedback != "" {
		s.Feedback = r.Feedback
	}
}
