package model

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Draft is the in-progress, possibly invalid copy of a record being edited.
// It carries the editable subset only; id and author never travel in a draft.
type Draft struct {
	ScientificName  string   `json:"scientific_name"`
	CommonName      *string  `json:"common_name"`
	Kingdom         Kingdom  `json:"kingdom"`
	TotalPopulation *float64 `json:"total_population"`
	Image           *string  `json:"image"`
	Description     *string  `json:"description"`
}

// UnmarshalJSON accepts total_population as any JSON value and coerces it
// to a number. Form inputs send numbers as strings.
func (d *Draft) UnmarshalJSON(data []byte) error {
	type alias Draft
	aux := struct {
		*alias
		TotalPopulation any `json:"total_population"`
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.TotalPopulation = CoercePopulation(aux.TotalPopulation)
	return nil
}

// CoercePopulation converts raw input to a number.
// nil and blank strings are absent; anything non-numeric becomes 0, which
// the positive-integer rule rejects.
func CoercePopulation(raw any) *float64 {
	if raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return &v
}

// DraftFrom copies the authoritative record into a fresh draft
func DraftFrom(s *Species) Draft {
	d := Draft{
		ScientificName: s.ScientificName,
		CommonName:     cloneString(s.CommonName),
		Kingdom:        s.Kingdom,
		Image:          cloneString(s.Image),
		Description:    cloneString(s.Description),
	}
	if s.TotalPopulation != nil {
		v := float64(*s.TotalPopulation)
		d.TotalPopulation = &v
	}
	return d
}

// DraftFromFields builds a draft holding already-normalized values
func DraftFromFields(f SpeciesFields) Draft {
	s := Species{}
	s.Apply(f)
	return DraftFrom(&s)
}

// Equal reports whether two drafts hold the same values
func (d Draft) Equal(o Draft) bool {
	return d.ScientificName == o.ScientificName &&
		d.Kingdom == o.Kingdom &&
		equalString(d.CommonName, o.CommonName) &&
		equalString(d.Image, o.Image) &&
		equalString(d.Description, o.Description) &&
		equalFloat(d.TotalPopulation, o.TotalPopulation)
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Clone returns a deep copy of the draft
func (d Draft) Clone() Draft {
	out := d
	out.CommonName = cloneString(d.CommonName)
	out.Image = cloneString(d.Image)
	out.Description = cloneString(d.Description)
	if d.TotalPopulation != nil {
		v := *d.TotalPopulation
		out.TotalPopulation = &v
	}
	return out
}
