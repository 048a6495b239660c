package adopter

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Adopter, error)
	Get(ctx context.Context, id int64) (*Adopter, error)
	GetByPhone(ctx context.Context, phone string) (*Adopter, error)
	Create(ctx context.Context, a *Adopter) error
	Update(ctx context.Context, a *Adopter) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// AdoptionRegistry is the slice of the cat registry the adopter directory
// needs: whether any cat still references a given adopter.
type AdoptionRegistry interface {
	CountByAdopter(ctx context.Context, adopterID int64) (int64, error)
}
