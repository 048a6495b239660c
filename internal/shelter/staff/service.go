package staff

import (
	"context"
	"log/slog"

	"github.com/catcafe/catcafe/internal/platform/validate"
	"github.com/catcafe/catcafe/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListStaff(ctx context.Context) ([]*Staff, error) {
	return service.repo.List(ctx)
}

func (service *Service) GetStaff(ctx context.Context, id string) (*Staff, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) CreateStaff(ctx context.Context, member *Staff) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, member.Name).MaxLen(FieldName, member.Name, 100)
	validator.Required(FieldLastName, member.LastName).MaxLen(FieldLastName, member.LastName, 100)
	validator.Positive(FieldAge, member.Age)
	validator.Required(FieldRole, member.Role).MaxLen(FieldRole, member.Role, 50)
	validator.Custom(FieldDateJoined, member.DateJoined.IsZero(), "This field is required")

	if err := validator.Err(); err != nil {
		return err
	}

	member.ID = uuid.New()

	if err := service.repo.Create(ctx, member); err != nil {
		return err
	}

	service.logger.Info("staff_created", slog.String("staff_id", member.ID))
	return nil
}

// UpdateStaff merges the supplied fields onto the existing record and
// persists the result.
func (service *Service) UpdateStaff(ctx context.Context, id string, input UpdateInput) (*Staff, error) {
	member, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Age != nil {
		member.Age = *input.Age
	}
	if input.DateJoined != nil {
		member.DateJoined = *input.DateJoined
	}
	if input.Role != nil {
		member.Role = *input.Role
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, member.Name).MaxLen(FieldName, member.Name, 100)
	validator.Required(FieldLastName, member.LastName).MaxLen(FieldLastName, member.LastName, 100)
	validator.Positive(FieldAge, member.Age)
	validator.Required(FieldRole, member.Role).MaxLen(FieldRole, member.Role, 50)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	service.logger.Info("staff_updated", slog.String("staff_id", member.ID))
	return member, nil
}

// DeleteStaff removes the record unconditionally. Cats referencing this
// member keep existing with their staff reference cleared by the store.
func (service *Service) DeleteStaff(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("staff_deleted", slog.String("staff_id", id))
	return nil
}
