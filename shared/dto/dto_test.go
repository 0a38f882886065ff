package dto_test

import (
	"math"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/model"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	// Create test time values
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected int
	}{
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 10}, expected: 0},
		{name: "third page", params: dto.QueryParams{Page: 3, Limit: 5}, expected: 10},
		{name: "no page", params: dto.QueryParams{Limit: 5}, expected: 0},
		{name: "saturates", params: dto.QueryParams{Page: math.MaxInt, Limit: 10}, expected: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Offset(); got != tt.expected {
				t.Errorf("expected offset %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
	}{
		{name: "unsorted", params: dto.QueryParams{Page: 1, Limit: 10}, expected: ""},
		{name: "direction missing", params: dto.QueryParams{SortBy: "bookings.start_date"}, expected: ""},
		{name: "single column", params: dto.QueryParams{SortBy: "bookings.start_date", SortDir: dto.SortDirAsc}, expected: "ORDER BY bookings.start_date ASC"},
		{
			name:     "tie break",
			params:   dto.QueryParams{SortBy: "bookings.start_date", SortDir: dto.SortDirDesc, ThenBy: "bookings.id"},
			expected: "ORDER BY bookings.start_date DESC, bookings.id DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.OrderBy(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
