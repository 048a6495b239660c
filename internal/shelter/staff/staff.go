package staff

import "time"

// Staff represents a shelter employee who can be put in charge of cats.
type Staff struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LastName   string    `json:"lastName"`
	Age        int       `json:"age"`
	DateJoined time.Time `json:"dateJoined"`
	Role       string    `json:"role"`
}

// UpdateInput is the tagged set of fields a partial staff update may change.
// A nil field is left untouched on the existing record.
type UpdateInput struct {
	Name       *string    `json:"name"`
	LastName   *string    `json:"lastName"`
	Age        *int       `json:"age"`
	DateJoined *time.Time `json:"dateJoined"`
	Role       *string    `json:"role"`
}

// Global field names for validation
const (
	FieldName       = "name"
	FieldLastName   = "lastName"
	FieldAge        = "age"
	FieldDateJoined = "dateJoined"
	FieldRole       = "role"
)
