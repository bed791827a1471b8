package model

import (
	"time"

	"github.com/google/uuid"
)

// Kingdom is the taxonomic kingdom of a species record
type Kingdom string

const (
	KingdomAnimalia Kingdom = "Animalia"
	KingdomPlantae  Kingdom = "Plantae"
	KingdomFungi    Kingdom = "Fungi"
	KingdomProtista Kingdom = "Protista"
	KingdomArchaea  Kingdom = "Archaea"
	KingdomBacteria Kingdom = "Bacteria"
)

// AllKingdoms returns the closed set of accepted kingdoms
func AllKingdoms() []Kingdom {
	return []Kingdom{
		KingdomAnimalia,
		KingdomPlantae,
		KingdomFungi,
		KingdomProtista,
		KingdomArchaea,
		KingdomBacteria,
	}
}

// IsValid reports whether k is one of AllKingdoms
func (k Kingdom) IsValid() bool {
	for _, v := range AllKingdoms() {
		if k == v {
			return true
		}
	}
	return false
}

// Species is the catalogued record as held by the store
type Species struct {
	// Identity - assigned by the store, never changes
	ID int64 `json:"id" db:"id"`

	// Editable fields
	ScientificName  string  `json:"scientific_name" db:"scientific_name"`
	CommonName      *string `json:"common_name" db:"common_name"`
	Kingdom         Kingdom `json:"kingdom" db:"kingdom"`
	TotalPopulation *int64  `json:"total_population" db:"total_population"`
	Image           *string `json:"image" db:"image"`
	Description     *string `json:"description" db:"description"`

	// Owner - only the author may edit or delete
	Author uuid.UUID `json:"author" db:"author_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SpeciesFields is the normalized, validated editable subset sent to the store
type SpeciesFields struct {
	ScientificName  string  `json:"scientific_name"`
	CommonName      *string `json:"common_name"`
	Kingdom         Kingdom `json:"kingdom"`
	TotalPopulation *int64  `json:"total_population"`
	Image           *string `json:"image"`
	Description     *string `json:"description"`
}

// IsOwnedBy reports whether actor is the record's author
func (s *Species) IsOwnedBy(actor uuid.UUID) bool {
	return actor != uuid.Nil && s.Author == actor
}

// Fields returns the editable subset of the record
func (s *Species) Fields() SpeciesFields {
	return SpeciesFields{
		ScientificName:  s.ScientificName,
		CommonName:      cloneString(s.CommonName),
		Kingdom:         s.Kingdom,
		TotalPopulation: cloneInt(s.TotalPopulation),
		Image:           cloneString(s.Image),
		Description:     cloneString(s.Description),
	}
}

// Apply overwrites the editable fields of the record
func (s *Species) Apply(f SpeciesFields) {
	s.ScientificName = f.ScientificName
	s.CommonName = cloneString(f.CommonName)
	s.Kingdom = f.Kingdom
	s.TotalPopulation = cloneInt(f.TotalPopulation)
	s.Image = cloneString(f.Image)
	s.Description = cloneString(f.Description)
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
