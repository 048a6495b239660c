package cat

import "time"

// Cat is a shelter resident. StaffInCharge and AdopterID are references into
// the staff and adopter directories; both foreign keys clear on delete, which
// is why they are pointers even though staff is mandatory at creation time.
type Cat struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Breed         string    `json:"breed"`
	DateJoined    time.Time `json:"dateJoined"`
	Vaccinated    bool      `json:"vaccinated"`
	Temperament   []string  `json:"temperament"`
	StaffInCharge *string   `json:"staffInCharge"`
	IsAdopted     bool      `json:"isAdopted"`
	AdopterID     *int64    `json:"adopterId"`
}

// Filter narrows a listing. Temperaments use AND semantics: a cat matches
// only when it carries every listed tag. IsAdopted is tri-state; nil means
// no adoption filtering.
type Filter struct {
	Temperaments []string
	IsAdopted    *bool
}

// AssignmentPatch is the tagged pair of references a partial update may
// change. A nil field is left untouched; supplying AdopterID forces the
// adoption flag to true.
type AssignmentPatch struct {
	StaffInCharge *string `json:"staffInCharge"`
	AdopterID     *int64  `json:"adopterId"`
}

// Global field names for validation
const (
	FieldName          = "name"
	FieldAge           = "age"
	FieldBreed         = "breed"
	FieldDateJoined    = "dateJoined"
	FieldTemperament   = "temperament"
	FieldStaffInCharge = "staffInCharge"
	FieldAdopterID     = "adopterId"
)
