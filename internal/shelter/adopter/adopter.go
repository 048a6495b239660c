package adopter

import "time"

// Adopter represents a person who may take a cat home. The phone number is
// stored in its canonical digit-only form and is unique across all adopters.
type Adopter struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
}

// UpdateInput is the tagged set of fields a partial adopter update may change.
// A nil field is left untouched on the existing record.
type UpdateInput struct {
	Name        *string    `json:"name"`
	LastName    *string    `json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldLastName    = "lastName"
	FieldDateOfBirth = "dateOfBirth"
	FieldPhone       = "phone"
	FieldAddress     = "address"
)

// AdultAge is the age of majority an adopter must have reached.
const AdultAge = 18

// AgeAt computes the calendar-aware age at the reference date: the year
// difference, reduced by one if the birthday has not yet occurred that year.
func AgeAt(dateOfBirth, at time.Time) int {
	age := at.Year() - dateOfBirth.Year()

	monthDiff := int(at.Month()) - int(dateOfBirth.Month())
	dayDiff := at.Day() - dateOfBirth.Day()
	if monthDiff < 0 || (monthDiff == 0 && dayDiff < 0) {
		age--
	}

	return age
}
