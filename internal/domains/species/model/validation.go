package model

import (
	"errors"
	"math"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// FieldErrors maps a JSON field name to its validation message
type FieldErrors map[string]string

// ========================================
// NORMALIZATION
// ========================================

// Normalize trims every text field and turns blank optional text into nil.
// Normalize(Normalize(d)) == Normalize(d).
func Normalize(d Draft) Draft {
	out := Draft{
		ScientificName: strings.TrimSpace(d.ScientificName),
		CommonName:     normalizeOptional(d.CommonName),
		Kingdom:        Kingdom(strings.TrimSpace(string(d.Kingdom))),
		Image:          normalizeOptional(d.Image),
		Description:    normalizeOptional(d.Description),
	}
	if d.TotalPopulation != nil {
		v := *d.TotalPopulation
		out.TotalPopulation = &v
	}
	return out
}

func normalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// ========================================
// RULES
// ========================================

// Validate checks a normalized draft. Every field is checked; all
// violations come back together as validation.Errors.
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ScientificName,
			validation.Required.Error("scientific name is required"),
		),
		validation.Field(&d.Kingdom,
			validation.Required.Error("kingdom is required"),
			validation.In(kingdomValues()...).Error("kingdom must be one of Animalia, Plantae, Fungi, Protista, Archaea, Bacteria"),
		),
		validation.Field(&d.TotalPopulation,
			validation.By(positiveInteger),
		),
		validation.Field(&d.Image,
			is.RequestURL.Error("image must be an absolute URL"),
			validation.By(hierarchicalHost),
		),
	)
}

func kingdomValues() []interface{} {
	kingdoms := AllKingdoms()
	values := make([]interface{}, len(kingdoms))
	for i, k := range kingdoms {
		values[i] = k
	}
	return values
}

func positiveInteger(value interface{}) error {
	p, _ := value.(*float64)
	if p == nil {
		return nil
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < 1 || v >= math.MaxInt64 {
		return errors.New("total population must be a positive integer")
	}
	return nil
}

// http:// parses as a request URI but has no host
func hierarchicalHost(value interface{}) error {
	p, _ := value.(*string)
	if p == nil {
		return nil
	}
	u, err := url.Parse(*p)
	if err != nil || !u.IsAbs() || (u.Opaque == "" && u.Host == "") {
		return errors.New("image must be an absolute URL")
	}
	return nil
}

// ========================================
// SCHEMA ENTRY POINT
// ========================================

// ValidateDraft normalizes and validates d. On success it returns the
// normalized fields ready for persistence; on failure it returns every
// field error and zero fields.
func ValidateDraft(d Draft) (SpeciesFields, FieldErrors) {
	n := Normalize(d)
	if err := n.Validate(); err != nil {
		return SpeciesFields{}, ToFieldErrors(err)
	}

	fields := SpeciesFields{
		ScientificName: n.ScientificName,
		CommonName:     n.CommonName,
		Kingdom:        n.Kingdom,
		Image:          n.Image,
		Description:    n.Description,
	}
	if n.TotalPopulation != nil {
		v := int64(*n.TotalPopulation)
		fields.TotalPopulation = &v
	}
	return fields, nil
}

// ToFieldErrors flattens an ozzo error into per-field messages
func ToFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := make(FieldErrors, len(verrs))
		for field, e := range verrs {
			out[field] = e.Error()
		}
		return out
	}
	return FieldErrors{"draft": err.Error()}
}
