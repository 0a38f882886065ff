package classifier_test

import (
	"math"
	"shareit/internal/domains/booking/classifier"
	"shareit/internal/domains/booking/model"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func TestBuild_WhereClausePerCategory(t *testing.T) {
	tests := []struct {
		category  model.Category
		wantWhere string
		wantArgs  map[string]any
		wantDir   string
	}{
		{
			category:  model.CategoryAll,
			wantWhere: "(bookings.booker_id = :subject_id)",
			wantArgs:  map[string]any{"subject_id": "u-1"},
			wantDir:   dto.SortDirDesc,
		},
		{
			category:  model.CategoryPast,
			wantWhere: "(bookings.booker_id = :subject_id AND bookings.end_date < :now_end)",
			wantArgs:  map[string]any{"subject_id": "u-1", "now_end": now},
			wantDir:   dto.SortDirDesc,
		},
		{
			category:  model.CategoryFuture,
			wantWhere: "(bookings.booker_id = :subject_id AND bookings.start_date > :now_start)",
			wantArgs:  map[string]any{"subject_id": "u-1", "now_start": now},
			wantDir:   dto.SortDirDesc,
		},
		{
			category:  model.CategoryCurrent,
			wantWhere: "(bookings.booker_id = :subject_id AND bookings.start_date <= :now_start AND bookings.end_date > :now_end)",
			wantArgs:  map[string]any{"subject_id": "u-1", "now_start": now, "now_end": now},
			wantDir:   dto.SortDirAsc,
		},
		{
			category:  model.CategoryWaiting,
			wantWhere: "(bookings.booker_id = :subject_id AND bookings.status = :status)",
			wantArgs:  map[string]any{"subject_id": "u-1", "status": model.StatusWaiting},
			wantDir:   dto.SortDirDesc,
		},
		{
			category:  model.CategoryRejected,
			wantWhere: "(bookings.booker_id = :subject_id AND bookings.status = :status)",
			wantArgs:  map[string]any{"subject_id": "u-1", "status": model.StatusRejected},
			wantDir:   dto.SortDirDesc,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			q, err := classifier.Build("u-1", model.RoleBooker, tt.category, 0, 10, now)
			require.NoError(t, err)

			where, args := q.Filter.GetWhereClause()
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
			assert.Equal(t, tt.wantDir, q.Params.SortDir)
			assert.Equal(t, classifier.SortColumn, q.Params.SortBy)
		})
	}
}

func TestBuild_OwnerRoleUsesItemOwner(t *testing.T) {
	q, err := classifier.Build("u-2", model.RoleOwner, model.CategoryWaiting, 0, 10, now)
	require.NoError(t, err)

	where, args := q.Filter.GetWhereClause()
	assert.Equal(t, "(items.owner_id = :subject_id AND bookings.status = :status)", where)
	assert.Equal(t, "u-2", args["subject_id"])
}

func TestBuild_PagingIsZeroBased(t *testing.T) {
	q, err := classifier.Build("u-1", model.RoleBooker, model.CategoryAll, 2, 5, now)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Params.Page)
	assert.Equal(t, 5, q.Params.Limit)
	assert.Equal(t, 10, q.Params.Offset())
}

func TestBuild_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		category model.Category
		page     int
		size     int
		wantKind failure.Kind
	}{
		{name: "unknown category", role: model.RoleBooker, category: "BOGUS", page: 0, size: 10, wantKind: failure.KindInvalidCategory},
		{name: "negative page", role: model.RoleBooker, category: model.CategoryAll, page: -1, size: 10, wantKind: failure.KindInvalidPagination},
		{name: "zero size", role: model.RoleOwner, category: model.CategoryAll, page: 0, size: 0, wantKind: failure.KindInvalidPagination},
		{name: "unknown role", role: "admin", category: model.CategoryAll, page: 0, size: 10, wantKind: failure.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classifier.Build("u-1", tt.role, tt.category, tt.page, tt.size, now)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, failure.KindOf(err))
		})
	}
}

func TestBuild_UnknownCategoryEchoesInput(t *testing.T) {
	_, err := classifier.Build("u-1", model.RoleBooker, "BOGUS", 0, 10, now)

	assert.EqualError(t, err, "Unknown state: BOGUS")
}

func TestBuild_OverflowingPageIsRejected(t *testing.T) {
	_, err := classifier.Build("u-1", model.RoleBooker, model.CategoryAll, math.MaxInt, 10, now)

	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidPagination, failure.KindOf(err))
}

func TestBuild_OrderIsTotal(t *testing.T) {
	for _, category := range []model.Category{model.CategoryAll, model.CategoryCurrent} {
		q, err := classifier.Build("u-1", model.RoleBooker, category, 0, 10, now)
		require.NoError(t, err)

		assert.Equal(t, classifier.TieBreakColumn, q.Params.ThenBy)
		assert.Equal(t, "ORDER BY bookings.start_date "+q.Params.SortDir+", bookings.id "+q.Params.SortDir, q.Params.OrderBy())
	}
}

func TestBuild_BindsNowInUTC(t *testing.T) {
	local := now.In(time.FixedZone("UTC-5", -5*60*60))

	q, err := classifier.Build("u-1", model.RoleBooker, model.CategoryCurrent, 0, 10, local)
	require.NoError(t, err)

	_, args := q.Filter.GetWhereClause()
	for _, arg := range []string{"now_start", "now_end"} {
		bound, ok := args[arg].(time.Time)
		require.True(t, ok)
		assert.Equal(t, time.UTC, bound.Location())
		assert.True(t, bound.Equal(now))
	}
}

// orderLike sorts bookings by the query's sort keys the way ORDER BY would.
func orderLike(t *testing.T, params dto.QueryParams, bookings []model.Booking) {
	t.Helper()

	key := func(column string, b model.Booking) string {
		switch column {
		case classifier.SortColumn:
			return b.Start.UTC().Format(time.RFC3339Nano)
		case classifier.TieBreakColumn:
			return b.ID
		}

		t.Fatalf("unexpected sort column %s", column)

		return ""
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		c := strings.Compare(key(params.SortBy, a), key(params.SortBy, b))
		if c == 0 && params.ThenBy != "" {
			c = strings.Compare(key(params.ThenBy, a), key(params.ThenBy, b))
		}

		if params.SortDir == dto.SortDirDesc {
			return -c
		}

		return c
	})
}

func TestBuild_PagingAcrossEqualStarts(t *testing.T) {
	start := now.Add(time.Hour)
	stored := []model.Booking{
		{ID: "b-3", Start: start, End: start.Add(time.Hour)},
		{ID: "b-1", Start: start, End: start.Add(2 * time.Hour)},
		{ID: "b-4", Start: start, End: start.Add(time.Hour)},
		{ID: "b-2", Start: start, End: start.Add(3 * time.Hour)},
	}

	var seen []string

	for page := range 2 {
		q, err := classifier.Build("u-1", model.RoleBooker, model.CategoryFuture, page, 2, now)
		require.NoError(t, err)

		// Postgres may return tied rows in any order, so each page starts from a different scan order.
		scan := slices.Clone(stored)
		if page == 1 {
			slices.Reverse(scan)
		}

		orderLike(t, q.Params, scan)

		for _, b := range scan[q.Params.Offset():min(q.Params.Offset()+q.Params.Limit, len(scan))] {
			seen = append(seen, b.ID)
		}
	}

	assert.Equal(t, []string{"b-4", "b-3", "b-2", "b-1"}, seen)
}

// fixtures spans every position of an interval relative to now, including the boundaries.
func fixtures() []model.Booking {
	offsets := []time.Duration{-48 * time.Hour, -time.Hour, 0, time.Hour, 48 * time.Hour}
	statuses := []model.Status{model.StatusWaiting, model.StatusApproved, model.StatusRejected, model.StatusCanceled}

	var out []model.Booking

	for _, s := range offsets {
		for _, e := range offsets {
			if e <= s {
				continue
			}

			for _, st := range statuses {
				out = append(out, model.Booking{Start: now.Add(s), End: now.Add(e), Status: st})
			}
		}
	}

	return out
}

// selects applies the booking predicates of the built query to b, the way the
// store would for a row already owned by the subject.
func selects(t *testing.T, category model.Category, b model.Booking) bool {
	t.Helper()

	q, err := classifier.Build("u-1", model.RoleBooker, category, 0, 10, now)
	require.NoError(t, err)

	return holds(t, q.Filter, b)
}

func holds(t *testing.T, group dto.FilterGroup, b model.Booking) bool {
	t.Helper()

	for _, f := range group.Filters {
		switch f := f.(type) {
		case dto.FilterGroup:
			if !holds(t, f, b) {
				return false
			}
		case dto.Filter:
			if !compare(t, f, b) {
				return false
			}
		}
	}

	return true
}

func compare(t *testing.T, f dto.Filter, b model.Booking) bool {
	t.Helper()

	var column time.Time

	switch f.Field {
	case model.FieldBookerID, model.FieldOwnerID:
		return true
	case model.FieldStatus:
		require.Equal(t, dto.FilterOperatorEq, f.Operator)

		return f.Value == b.Status
	case model.FieldStartDate:
		column = b.Start
	case model.FieldEndDate:
		column = b.End
	default:
		t.Fatalf("unexpected field %s", f.Field)
	}

	value, ok := f.Value.(time.Time)
	require.True(t, ok)

	switch f.Operator {
	case dto.FilterOperatorLess:
		return column.Before(value)
	case dto.FilterOperatorLessEq:
		return !column.After(value)
	case dto.FilterOperatorGreater:
		return column.After(value)
	default:
		t.Fatalf("unexpected operator %s", f.Operator)
	}

	return false
}

func TestBuild_TemporalCategoriesArePairwiseDisjoint(t *testing.T) {
	temporal := []model.Category{model.CategoryPast, model.CategoryCurrent, model.CategoryFuture}

	for _, b := range fixtures() {
		hits := 0

		for _, c := range temporal {
			if selects(t, c, b) {
				hits++

				assert.True(t, selects(t, model.CategoryAll, b), "%s must be within ALL", c)
			}
		}

		assert.LessOrEqual(t, hits, 1, "start=%s end=%s", b.Start, b.End)
	}
}

func TestBuild_Boundaries(t *testing.T) {
	endsNow := model.Booking{Start: now.Add(-time.Hour), End: now}
	startsNow := model.Booking{Start: now, End: now.Add(time.Hour)}

	assert.False(t, selects(t, model.CategoryPast, endsNow))
	assert.False(t, selects(t, model.CategoryCurrent, endsNow))

	assert.True(t, selects(t, model.CategoryCurrent, startsNow))
	assert.False(t, selects(t, model.CategoryFuture, startsNow))
}

func TestBuild_StatusCategories(t *testing.T) {
	for _, b := range fixtures() {
		assert.Equal(t, b.Status == model.StatusWaiting, selects(t, model.CategoryWaiting, b))
		assert.Equal(t, b.Status == model.StatusRejected, selects(t, model.CategoryRejected, b))
	}
}
