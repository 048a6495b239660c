package cat

import (
	"context"

	"github.com/catcafe/catcafe/internal/shelter/temperament"
)

// Repository defines the data access contract for the cat registry.
//
// Implementations live in store_postgres.go; the interface lives here because
// the service layer (the consumer) defines what it needs.
type Repository interface {
	// List returns every cat ordered by name, each hydrated with its
	// temperament tags. Filtering happens in the service layer.
	List(ctx context.Context) ([]*Cat, error)

	// Get returns the cat with the given id, hydrated with its tags.
	Get(ctx context.Context, id int64) (*Cat, error)

	// Create persists a new cat row together with one association row per
	// temperament id, inside a single transaction. The generated id is
	// written back onto the entity.
	Create(ctx context.Context, cat *Cat, temperamentIDs []int) error

	// Replace overwrites every scalar field of an existing cat and, when
	// replaceTags is set, rewrites the full temperament association set.
	Replace(ctx context.Context, cat *Cat, temperamentIDs []int, replaceTags bool) error

	// UpdateAssignment persists only the staff/adopter references and the
	// adoption flag, leaving scalar fields and tags untouched.
	UpdateAssignment(ctx context.Context, cat *Cat) error

	// Delete removes the cat unconditionally. Association rows cascade.
	Delete(ctx context.Context, id int64) error

	// ListByStaff returns the cats a staff member is in charge of.
	ListByStaff(ctx context.Context, staffID string) ([]*Cat, error)

	// ListByAdopter returns the cats adopted by the given adopter.
	ListByAdopter(ctx context.Context, adopterID int64) ([]*Cat, error)

	// CountByAdopter reports how many cats reference the adopter.
	CountByAdopter(ctx context.Context, adopterID int64) (int64, error)
}

// StaffDirectory is the slice of the staff directory the registry needs to
// resolve staff-in-charge references.
type StaffDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// AdopterDirectory is the slice of the adopter directory the registry needs
// to resolve adopter references.
type AdopterDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Vocabulary maps caller-supplied temperament tokens onto the fixed seeded
// vocabulary, rejecting tokens outside it.
type Vocabulary interface {
	Canonicalize(ctx context.Context, names []string) ([]temperament.Temperament, error)
}
