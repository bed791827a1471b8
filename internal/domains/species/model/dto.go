package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SpeciesFilter - query parameters for GET /v1/species
type SpeciesFilter struct {
	Search  string  `json:"search" form:"search"`   // Partial scientific/common name search
	Kingdom Kingdom `json:"kingdom" form:"kingdom"` // Exact kingdom match
	Limit   int     `json:"limit" form:"limit"`
	Offset  int     `json:"offset" form:"offset"`
}

// Validate validates SpeciesFilter
func (f SpeciesFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Kingdom, validation.In(kingdomValues()...)),
		validation.Field(&f.Limit, validation.Min(1), validation.Max(100)),
		validation.Field(&f.Offset, validation.Min(0)),
	)
}

// SetDefaults fills pagination defaults
func (f *SpeciesFilter) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SpeciesListResponse - paginated list response
type SpeciesListResponse struct {
	Data       []Species      `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta - reusable pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationMeta builds pagination metadata from a filter and total count
func NewPaginationMeta(filter SpeciesFilter, total int64) PaginationMeta {
	return PaginationMeta{
		CurrentPage: (filter.Offset / filter.Limit) + 1,
		PageSize:    filter.Limit,
		TotalItems:  total,
		TotalPages:  (int(total) + filter.Limit - 1) / filter.Limit,
	}
}
