package temperament

// Temperament is one tag from the fixed behavioural vocabulary cats are
// described with. The vocabulary is seeded by migration and is never
// extensible at runtime.
type Temperament struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Global field names for validation
const (
	FieldTemperament = "temperament"
)
