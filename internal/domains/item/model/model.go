package model

import "shareit/shared/model"

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAvailable   = "available"
	FieldOwnerID     = "owner_id"
	FieldRequestID   = "request_id"
)

// Item is read-only here. The catalog is maintained elsewhere.
type Item struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Available   bool    `db:"available"`
	OwnerID     string  `db:"owner_id"`
	RequestID   *string `db:"request_id"`
	model.Metadata
}
