package models

import "time"

// ExportDocument is the portable snapshot of one user's core profile:
// breeders, sheep, and the prices attached to those breeders. Time-series
// records are deliberately out of backup scope.
type ExportDocument struct {
	Breeders   []Breeder         `json:"breeders"`
	Sheep      []Sheep           `json:"sheep"`
	Prices     []IngredientPrice `json:"prices"`
	ExportDate time.Time         `json:"exportDate"`
}

// SectionReport counts how an import fared for one top-level document key.
type SectionReport struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}

// ImportReport summarizes an import per section so the caller can tell a
// clean restore from a partial one. Sections absent from the document stay
// at zero.
type ImportReport struct {
	Breeders SectionReport `json:"breeders"`
	Sheep    SectionReport `json:"sheep"`
	Prices   SectionReport `json:"prices"`
}

// TotalFailed reports the number of rows that could not be applied.
func (r ImportReport) TotalFailed() int {
	return r.Breeders.Failed + r.Sheep.Failed + r.Prices.Failed
}
