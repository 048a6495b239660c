package temperament

import "context"

type Repository interface {
	List(ctx context.Context) ([]Temperament, error)
	FindByNames(ctx context.Context, names []string) ([]Temperament, error)
}
