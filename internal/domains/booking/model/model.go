package model

import (
	"shareit/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldItemID    = "item_id"
	FieldBookerID  = "booker_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"

	// joined through GetJoinQuery
	ItemTable       = "items"
	UserTable       = "users"
	FieldOwnerID    = "owner_id"
	FieldItemName   = "item_name"
	FieldBookerName = "booker_name"
)

type Booking struct {
	ID         string    `db:"id"`
	ItemID     string    `db:"item_id"`
	BookerID   string    `db:"booker_id"`
	Start      time.Time `db:"start_date"`
	End        time.Time `db:"end_date"`
	Status     Status    `db:"status"`
	ItemName   string    `db:"item_name"   table:"items" column:"name"`
	OwnerID    string    `db:"owner_id"    table:"items"`
	BookerName string    `db:"booker_name" table:"users" column:"name"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id"
}

// Ended reports whether the booking finished strictly before now.
func (b Booking) Ended(now time.Time) bool {
	return b.End.Before(now)
}

// Started reports whether the booking began at or before now.
func (b Booking) Started(now time.Time) bool {
	return !b.Start.After(now)
}
