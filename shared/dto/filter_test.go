package dto_test

import (
	"shareit/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "WAITING", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "WAITING"},
		},
		{
			name:      "less uses arg name",
			filter:    dto.Filter{ArgName: "now_end", Field: "end_date", Value: now, Operator: dto.FilterOperatorLess, Table: "bookings"},
			wantWhere: "bookings.end_date < :now_end",
			wantArgs:  map[string]any{"now_end": now},
		},
		{
			name:      "greater",
			filter:    dto.Filter{ArgName: "now_start", Field: "start_date", Value: now, Operator: dto.FilterOperatorGreater, Table: "bookings"},
			wantWhere: "bookings.start_date > :now_start",
			wantArgs:  map[string]any{"now_start": now},
		},
		{
			name:      "less_eq",
			filter:    dto.Filter{Field: "start_date", Value: now, Operator: dto.FilterOperatorLessEq},
			wantWhere: "start_date <= :start_date",
			wantArgs:  map[string]any{"start_date": now},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "x", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "booker_id", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "now_start", Field: "start_date", Value: now, Operator: dto.FilterOperatorLessEq, Table: "bookings"},
					dto.Filter{ArgName: "now_end", Field: "end_date", Value: now, Operator: dto.FilterOperatorGreater, Table: "bookings"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.booker_id = :booker_id AND (bookings.start_date <= :now_start AND bookings.end_date > :now_end))", where)
	assert.Equal(t, map[string]any{"booker_id": "u-1", "now_start": now, "now_end": now}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
