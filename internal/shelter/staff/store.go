package staff

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Staff, error)
	Get(ctx context.Context, id string) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
