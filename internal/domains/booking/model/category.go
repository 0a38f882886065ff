package model

import (
	"fmt"
	"shareit/shared/failure"
)

// Category selects bookings by their position relative to now or by status.
type Category string

const (
	CategoryAll      Category = "ALL"
	CategoryCurrent  Category = "CURRENT"
	CategoryPast     Category = "PAST"
	CategoryFuture   Category = "FUTURE"
	CategoryWaiting  Category = "WAITING"
	CategoryRejected Category = "REJECTED"
)

var Categories = []Category{
	CategoryAll,
	CategoryCurrent,
	CategoryPast,
	CategoryFuture,
	CategoryWaiting,
	CategoryRejected,
}

// ParseCategory is case-sensitive. Unknown values fail echoing the input.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories {
		if string(c) == value {
			return c, nil
		}
	}

	return "", failure.InvalidCategory(fmt.Sprintf("Unknown state: %s", value)) // nolint:wrapcheck
}

// Role is the side of a booking a listing is requested from.
type Role string

const (
	RoleBooker Role = "booker"
	RoleOwner  Role = "owner"
)
