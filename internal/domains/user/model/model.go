package model

import "shareit/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
)

// User is read-only here. Accounts are managed by another service.
type User struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	model.Metadata
}
