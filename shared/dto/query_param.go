package dto

import (
	"fmt"
	"math"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	// ThenBy breaks ties left by SortBy, in the same direction.
	ThenBy string `json:"-"`
}

// OrderBy renders the ORDER BY clause, or an empty string when no sort is set.
func (q QueryParams) OrderBy() string {
	if q.SortBy == "" || q.SortDir == "" {
		return ""
	}

	if q.ThenBy == "" {
		return fmt.Sprintf("ORDER BY %s %s", q.SortBy, q.SortDir)
	}

	return fmt.Sprintf("ORDER BY %s %s, %s %s", q.SortBy, q.SortDir, q.ThenBy, q.SortDir)
}

// Offset returns the row offset for a one-based Page, saturating at math.MaxInt.
func (q QueryParams) Offset() int {
	if q.Page <= 0 || q.Limit <= 0 {
		return 0
	}

	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}
