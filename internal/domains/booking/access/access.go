// Package access holds the pure ownership predicates booking operations are guarded by.
package access

import (
	"fmt"
	bookingModel "shareit/internal/domains/booking/model"
	itemModel "shareit/internal/domains/item/model"
	"shareit/shared/failure"
)

func IsOwner(userID string, item itemModel.Item) bool {
	return userID != "" && item.OwnerID == userID
}

// IsBookingOwner compares against the owner joined onto the booking row.
func IsBookingOwner(userID string, booking bookingModel.Booking) bool {
	return userID != "" && booking.OwnerID == userID
}

func IsBooker(userID string, booking bookingModel.Booking) bool {
	return userID != "" && booking.BookerID == userID
}

// CanView is true for the booker and the owner of the booked item.
func CanView(userID string, booking bookingModel.Booking) bool {
	return IsBooker(userID, booking) || IsBookingOwner(userID, booking)
}

// EnsureCanBook refuses owners booking their own item.
func EnsureCanBook(userID string, item itemModel.Item) error {
	if IsOwner(userID, item) {
		return failure.InvalidState(fmt.Sprintf("owner cannot book own item %s", item.ID)) // nolint:wrapcheck
	}

	return nil
}

func EnsureCanDecide(userID string, booking bookingModel.Booking) error {
	if !IsBookingOwner(userID, booking) {
		return failure.AccessDenied(fmt.Sprintf("user %s is not the owner of the item in booking %s", userID, booking.ID)) // nolint:wrapcheck
	}

	return nil
}

func EnsureCanView(userID string, booking bookingModel.Booking) error {
	if !CanView(userID, booking) {
		return failure.AccessDenied(fmt.Sprintf("user %s is neither booker nor owner of booking %s", userID, booking.ID)) // nolint:wrapcheck
	}

	return nil
}

func EnsureOwner(userID string, item itemModel.Item) error {
	if !IsOwner(userID, item) {
		return failure.AccessDenied(fmt.Sprintf("user %s is not the owner of item %s", userID, item.ID)) // nolint:wrapcheck
	}

	return nil
}
