// Package classifier turns a (role, category, page) request into a filtered,
// ordered and paged booking query. Categories are defined once in a table and
// evaluated against a single captured instant.
package classifier

import (
	"fmt"
	"shareit/internal/domains/booking/model"
	bookingDto "shareit/internal/domains/booking/model/dto"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"time"
)

const (
	argSubject  = "subject_id"
	argNowStart = "now_start"
	argNowEnd   = "now_end"
	argStatus   = "status"

	SortColumn = model.TableName + "." + model.FieldStartDate
	// TieBreakColumn keeps pages stable across bookings sharing a start.
	TieBreakColumn = model.TableName + "." + model.FieldID
)

type rule struct {
	filters func(now time.Time) []any
	sortDir string
}

var rules = map[model.Category]rule{
	model.CategoryAll: {
		filters: func(time.Time) []any { return nil },
		sortDir: dto.SortDirDesc,
	},
	model.CategoryPast: {
		filters: func(now time.Time) []any {
			return []any{endBefore(now)}
		},
		sortDir: dto.SortDirDesc,
	},
	model.CategoryFuture: {
		filters: func(now time.Time) []any {
			return []any{startAfter(now)}
		},
		sortDir: dto.SortDirDesc,
	},
	model.CategoryCurrent: {
		filters: func(now time.Time) []any {
			return []any{
				bookingFilter(argNowStart, model.FieldStartDate, now, dto.FilterOperatorLessEq),
				bookingFilter(argNowEnd, model.FieldEndDate, now, dto.FilterOperatorGreater),
			}
		},
		sortDir: dto.SortDirAsc,
	},
	model.CategoryWaiting: {
		filters: func(time.Time) []any {
			return []any{statusIs(model.StatusWaiting)}
		},
		sortDir: dto.SortDirDesc,
	},
	model.CategoryRejected: {
		filters: func(time.Time) []any {
			return []any{statusIs(model.StatusRejected)}
		},
		sortDir: dto.SortDirDesc,
	},
}

// Query is what the booking store needs to run one classified listing.
type Query struct {
	Filter dto.FilterGroup
	Params dto.QueryParams
}

// Build composes the subject predicate for role, the category predicate at now,
// the category ordering and the zero-based page into one Query. now is bound
// as a UTC instant.
func Build(subjectID string, role model.Role, category model.Category, page, size int, now time.Time) (Query, error) {
	r, ok := rules[category]
	if !ok {
		return Query{}, failure.InvalidCategory(fmt.Sprintf("Unknown state: %s", category)) // nolint:wrapcheck
	}

	paging := bookingDto.PageRequest{Page: page, Size: size}
	if err := paging.Validate(); err != nil {
		return Query{}, err // nolint:wrapcheck
	}

	subject, err := subjectFilter(subjectID, role)
	if err != nil {
		return Query{}, err
	}

	params := paging.Params(SortColumn, r.sortDir)
	params.ThenBy = TieBreakColumn

	return Query{
		Filter: dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters:  append([]any{subject}, r.filters(now.UTC())...),
		},
		Params: params,
	}, nil
}

func subjectFilter(subjectID string, role model.Role) (dto.Filter, error) {
	switch role {
	case model.RoleBooker:
		return dto.Filter{
			ArgName:  argSubject,
			Field:    model.FieldBookerID,
			Value:    subjectID,
			Operator: dto.FilterOperatorEq,
			Table:    model.TableName,
		}, nil
	case model.RoleOwner:
		return dto.Filter{
			ArgName:  argSubject,
			Field:    model.FieldOwnerID,
			Value:    subjectID,
			Operator: dto.FilterOperatorEq,
			Table:    model.ItemTable,
		}, nil
	default:
		return dto.Filter{}, failure.BadRequestFromString(fmt.Sprintf("unknown role: %s", role)) // nolint:wrapcheck
	}
}

func bookingFilter(arg, field string, value any, operator string) dto.Filter {
	return dto.Filter{
		ArgName:  arg,
		Field:    field,
		Value:    value,
		Operator: operator,
		Table:    model.TableName,
	}
}

func endBefore(now time.Time) dto.Filter {
	return bookingFilter(argNowEnd, model.FieldEndDate, now, dto.FilterOperatorLess)
}

func startAfter(now time.Time) dto.Filter {
	return bookingFilter(argNowStart, model.FieldStartDate, now, dto.FilterOperatorGreater)
}

func statusIs(status model.Status) dto.Filter {
	return bookingFilter(argStatus, model.FieldStatus, status, dto.FilterOperatorEq)
}
