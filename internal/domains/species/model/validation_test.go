package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validDraft() Draft {
	return Draft{
		ScientificName:  "Panthera leo",
		CommonName:      strPtr("Lion"),
		Kingdom:         KingdomAnimalia,
		TotalPopulation: floatPtr(20000),
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	fields, errs := ValidateDraft(validDraft())

	require.Nil(t, errs)
	assert.Equal(t, "Panthera leo", fields.ScientificName)
	require.NotNil(t, fields.CommonName)
	assert.Equal(t, "Lion", *fields.CommonName)
	assert.Equal(t, KingdomAnimalia, fields.Kingdom)
	require.NotNil(t, fields.TotalPopulation)
	assert.Equal(t, int64(20000), *fields.TotalPopulation)
	assert.Nil(t, fields.Image)
	assert.Nil(t, fields.Description)
}

func TestValidateDraft_ScientificNameBlank(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n  "} {
		d := validDraft()
		d.ScientificName = name

		_, errs := ValidateDraft(d)

		require.NotNil(t, errs, "name %q", name)
		assert.Contains(t, errs, "scientific_name")
	}
}

func TestValidateDraft_ScientificNameTrimmed(t *testing.T) {
	d := validDraft()
	d.ScientificName = "  Panthera leo \n"

	fields, errs := ValidateDraft(d)

	require.Nil(t, errs)
	assert.Equal(t, "Panthera leo", fields.ScientificName)
}

func TestNormalize_OptionalText(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil stays absent", nil, nil},
		{"empty becomes absent", strPtr(""), nil},
		{"whitespace becomes absent", strPtr("   \t"), nil},
		{"value is trimmed", strPtr("  Lion  "), strPtr("Lion")},
		{"inner spaces kept", strPtr(" African lion "), strPtr("African lion")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Draft{CommonName: tt.in, Image: tt.in, Description: tt.in}

			n := Normalize(d)

			assert.Equal(t, tt.want, n.CommonName)
			assert.Equal(t, tt.want, n.Image)
			assert.Equal(t, tt.want, n.Description)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	d := Draft{
		ScientificName: "  Quercus robur ",
		CommonName:     strPtr(" English oak "),
		Kingdom:        " Plantae ",
		Image:          strPtr("   "),
		Description:    strPtr("\tdeciduous tree\n"),
	}

	once := Normalize(d)
	twice := Normalize(once)

	assert.True(t, once.Equal(twice))
}

func TestValidateDraft_TotalPopulation(t *testing.T) {
	tests := []struct {
		name  string
		value *float64
		valid bool
	}{
		{"absent", nil, true},
		{"one", floatPtr(1), true},
		{"large", floatPtr(8_000_000_000), true},
		{"zero", floatPtr(0), false},
		{"negative", floatPtr(-5), false},
		{"fractional", floatPtr(2.5), false},
		{"too large", floatPtr(1e19), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.TotalPopulation = tt.value

			_, errs := ValidateDraft(d)

			if tt.valid {
				assert.Nil(t, errs)
			} else {
				require.NotNil(t, errs)
				assert.Contains(t, errs, "total_population")
			}
		})
	}
}

func TestValidateDraft_Kingdom(t *testing.T) {
	for _, k := range AllKingdoms() {
		d := validDraft()
		d.Kingdom = k
		_, errs := ValidateDraft(d)
		assert.Nil(t, errs, "kingdom %s", k)
	}

	for _, k := range []Kingdom{"", "animalia", "Chromista", "Viruses"} {
		d := validDraft()
		d.Kingdom = k
		_, errs := ValidateDraft(d)
		require.NotNil(t, errs, "kingdom %q", k)
		assert.Contains(t, errs, "kingdom")
	}
}

func TestValidateDraft_Image(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		valid bool
	}{
		{"absent", nil, true},
		{"blank normalizes to absent", strPtr("  "), true},
		{"https", strPtr("https://upload.wikimedia.org/lion.jpg"), true},
		{"relative path", strPtr("/images/lion.jpg"), false},
		{"no scheme", strPtr("example.com/lion.jpg"), false},
		{"missing host", strPtr("http://"), false},
		{"plain text", strPtr("a lion"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Image = tt.value

			_, errs := ValidateDraft(d)

			if tt.valid {
				assert.Nil(t, errs)
			} else {
				require.NotNil(t, errs)
				assert.Contains(t, errs, "image")
			}
		})
	}
}

func TestValidateDraft_ReportsAllFields(t *testing.T) {
	d := Draft{
		ScientificName:  " ",
		Kingdom:         "Minerals",
		TotalPopulation: floatPtr(-1),
		Image:           strPtr("not a url"),
	}

	fields, errs := ValidateDraft(d)

	assert.Equal(t, SpeciesFields{}, fields)
	assert.Len(t, errs, 4)
	for _, f := range []string{"scientific_name", "kingdom", "total_population", "image"} {
		assert.Contains(t, errs, f)
	}
}

func TestDraft_UnmarshalJSON_CoercesPopulation(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  *float64
		valid bool
	}{
		{"number", `20000`, floatPtr(20000), true},
		{"numeric string", `"42"`, floatPtr(42), true},
		{"padded string", `" 7 "`, floatPtr(7), true},
		{"null", `null`, nil, true},
		{"empty string", `""`, nil, true},
		{"garbage string", `"lots"`, floatPtr(0), false},
		{"boolean", `true`, floatPtr(1), true},
		{"object", `{"a":1}`, floatPtr(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"scientific_name":"Panthera leo","kingdom":"Animalia","total_population":` + tt.raw + `}`

			var d Draft
			require.NoError(t, json.Unmarshal([]byte(body), &d))

			assert.Equal(t, tt.want, d.TotalPopulation)
			_, errs := ValidateDraft(d)
			assert.Equal(t, tt.valid, errs == nil)
		})
	}
}

func TestDraftFrom_RoundTripsRecord(t *testing.T) {
	pop := int64(300)
	s := &Species{
		ID:              9,
		ScientificName:  "Amanita muscaria",
		CommonName:      strPtr("Fly agaric"),
		Kingdom:         KingdomFungi,
		TotalPopulation: &pop,
	}

	fields, errs := ValidateDraft(DraftFrom(s))

	require.Nil(t, errs)
	assert.Equal(t, s.Fields(), fields)
}
