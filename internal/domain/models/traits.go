package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TraitKind distinguishes numeric measurements from categorical observations.
type TraitKind string

const (
	TraitNumeric     TraitKind = "numeric"
	TraitCategorical TraitKind = "categorical"
)

// TraitDef describes one entry of the closed trait tables: a stable
// identifier, a display label, a unit for numeric traits and the allowed
// values for categorical ones.
type TraitDef struct {
	ID      string
	Label   string
	Unit    string
	Kind    TraitKind
	Allowed []string
}

// TraitValue is a tagged value inside a trait map: either a number or a
// category label, never both. On the wire it is a bare JSON number or
// string, matching the export document shape.
type TraitValue struct {
	Kind   TraitKind
	Number float64
	Label  string
}

// Numeric builds a numeric trait value.
func Numeric(v float64) TraitValue {
	return TraitValue{Kind: TraitNumeric, Number: v}
}

// Categorical builds a categorical trait value.
func Categorical(label string) TraitValue {
	return TraitValue{Kind: TraitCategorical, Label: label}
}

func (v TraitValue) MarshalJSON() ([]byte, error) {
	if v.Kind == TraitCategorical {
		return json.Marshal(v.Label)
	}
	return json.Marshal(v.Number)
}

func (v *TraitValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		v.Kind = TraitCategorical
		v.Number = 0
		return json.Unmarshal(data, &v.Label)
	}
	v.Kind = TraitNumeric
	v.Label = ""
	return json.Unmarshal(data, &v.Number)
}

func (v TraitValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if v.Kind == TraitCategorical {
		return bson.MarshalValue(v.Label)
	}
	return bson.MarshalValue(v.Number)
}

func (v *TraitValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeString:
		v.Kind = TraitCategorical
		v.Number = 0
		return bson.UnmarshalValue(t, data, &v.Label)
	case bson.TypeDouble, bson.TypeInt32, bson.TypeInt64:
		v.Kind = TraitNumeric
		v.Label = ""
		return bson.UnmarshalValue(t, data, &v.Number)
	default:
		return fmt.Errorf("trait value: unsupported bson type %s", t)
	}
}

// MorphoTraits is the closed table of body morphometric measurements taken
// from a profile shot against a reference object.
var MorphoTraits = []TraitDef{
	{ID: "longueur_corps", Label: "Longueur du corps", Unit: "cm", Kind: TraitNumeric},
	{ID: "hauteur_garrot", Label: "Hauteur au garrot", Unit: "cm", Kind: TraitNumeric},
	{ID: "tour_poitrine", Label: "Tour de poitrine", Unit: "cm", Kind: TraitNumeric},
	{ID: "largeur_bassin", Label: "Largeur du bassin", Unit: "cm", Kind: TraitNumeric},
	{ID: "poids_estime", Label: "Poids estimé", Unit: "kg", Kind: TraitNumeric},
	{ID: "conformation", Label: "Conformation générale", Kind: TraitCategorical,
		Allowed: []string{"EXCELLENTE", "BONNE", "MOYENNE", "FAIBLE"}},
}

// MammaryTraits is the closed table of udder conformation traits assessed
// from a rear shot.
var MammaryTraits = []TraitDef{
	{ID: "profondeur_mamelle", Label: "Profondeur de la mamelle", Unit: "cm", Kind: TraitNumeric},
	{ID: "largeur_attache", Label: "Largeur de l'attache arrière", Unit: "cm", Kind: TraitNumeric},
	{ID: "symetrie", Label: "Symétrie des quartiers", Kind: TraitCategorical,
		Allowed: []string{"BONNE", "MOYENNE", "FAIBLE"}},
	{ID: "placement_trayons", Label: "Placement des trayons", Kind: TraitCategorical,
		Allowed: []string{"VERTICAL", "INCLINE", "HORIZONTAL"}},
}

// TraitTable indexes a definition slice by trait id.
func TraitTable(defs []TraitDef) map[string]TraitDef {
	table := make(map[string]TraitDef, len(defs))
	for _, def := range defs {
		table[def.ID] = def
	}
	return table
}

// ValidateTraits rejects trait maps carrying unknown identifiers, values of
// the wrong kind, or categorical values outside the allowed set.
func ValidateTraits(values map[string]TraitValue, defs []TraitDef) error {
	table := TraitTable(defs)
	for id, value := range values {
		def, ok := table[id]
		if !ok {
			return fmt.Errorf("unknown trait %q", id)
		}
		if value.Kind != def.Kind {
			return fmt.Errorf("trait %q: expected %s value", id, def.Kind)
		}
		if def.Kind == TraitCategorical {
			allowed := false
			for _, a := range def.Allowed {
				if value.Label == a {
					allowed = true
					break
				}
			}
			if !allowed {
				return fmt.Errorf("trait %q: value %q not allowed", id, value.Label)
			}
		}
	}
	return nil
}
