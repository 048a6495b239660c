package adopter

import (
	"context"
	"log/slog"
	"time"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/validate"
	"github.com/catcafe/catcafe/pkg/phone"
)

type Service struct {
	repo     Repository
	registry AdoptionRegistry
	logger   *slog.Logger

	// now is swappable so age-boundary tests can pin the clock.
	now func() time.Time
}

func NewService(repo Repository, registry AdoptionRegistry, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (service *Service) ListAdopters(ctx context.Context) ([]*Adopter, error) {
	return service.repo.List(ctx)
}

func (service *Service) GetAdopter(ctx context.Context, id int64) (*Adopter, error) {
	return service.repo.Get(ctx, id)
}

// CreateAdopter validates the age-of-majority and phone rules, normalizes the
// phone to its canonical form, and persists the new record.
func (service *Service) CreateAdopter(ctx context.Context, candidate *Adopter) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, candidate.Name).MaxLen(FieldName, candidate.Name, 100)
	validator.Required(FieldLastName, candidate.LastName).MaxLen(FieldLastName, candidate.LastName, 100)
	validator.MinLen(FieldAddress, candidate.Address, 6).MaxLen(FieldAddress, candidate.Address, 100)
	validator.Custom(FieldDateOfBirth, candidate.DateOfBirth.IsZero(), "This field is required")

	if err := validator.Err(); err != nil {
		return err
	}

	if AgeAt(candidate.DateOfBirth, service.now()) < AdultAge {
		return validate.RequiredError(FieldDateOfBirth, "The adopter must be at least 18 years old to adopt a cat")
	}

	normalized, err := phone.Normalize(candidate.Phone)
	if err != nil {
		return validate.RequiredError(FieldPhone, err.Error())
	}
	candidate.Phone = normalized

	if err := service.ensurePhoneFree(ctx, normalized, 0); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, candidate); err != nil {
		return err
	}

	service.logger.Info("adopter_created", slog.Int64("adopter_id", candidate.ID))
	return nil
}

// UpdateAdopter merges the supplied fields onto the existing record. Mutated
// fields are re-validated: the record-level invariants (adult age, canonical
// unique phone) hold for the adopter's whole lifetime, not just at creation.
func (service *Service) UpdateAdopter(ctx context.Context, id int64, input UpdateInput) (*Adopter, error) {
	adopter, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		adopter.Name = *input.Name
	}
	if input.LastName != nil {
		adopter.LastName = *input.LastName
	}
	if input.Address != nil {
		adopter.Address = *input.Address
	}
	if input.DateOfBirth != nil {
		adopter.DateOfBirth = *input.DateOfBirth
	}
	if input.Phone != nil {
		normalized, err := phone.Normalize(*input.Phone)
		if err != nil {
			return nil, validate.RequiredError(FieldPhone, err.Error())
		}
		if normalized != adopter.Phone {
			if err := service.ensurePhoneFree(ctx, normalized, adopter.ID); err != nil {
				return nil, err
			}
		}
		adopter.Phone = normalized
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, adopter.Name).MaxLen(FieldName, adopter.Name, 100)
	validator.Required(FieldLastName, adopter.LastName).MaxLen(FieldLastName, adopter.LastName, 100)
	validator.MinLen(FieldAddress, adopter.Address, 6).MaxLen(FieldAddress, adopter.Address, 100)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if AgeAt(adopter.DateOfBirth, service.now()) < AdultAge {
		return nil, validate.RequiredError(FieldDateOfBirth, "The adopter must be at least 18 years old to adopt a cat")
	}

	if err := service.repo.Update(ctx, adopter); err != nil {
		return nil, err
	}

	service.logger.Info("adopter_updated", slog.Int64("adopter_id", adopter.ID))
	return adopter, nil
}

// DeleteAdopter removes the record unless a cat still references it as its
// adopter.
func (service *Service) DeleteAdopter(ctx context.Context, id int64) error {
	adoptions, err := service.registry.CountByAdopter(ctx, id)
	if err != nil {
		return err
	}
	if adoptions > 0 {
		return apperr.Conflict("Adopters cannot be deleted once an adoption is on record")
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("adopter_deleted", slog.Int64("adopter_id", id))
	return nil
}

// ensurePhoneFree is the fast-path uniqueness check; the unique index on
// adopters.phone remains the authoritative guard under concurrency.
func (service *Service) ensurePhoneFree(ctx context.Context, normalizedPhone string, selfID int64) error {
	existing, err := service.repo.GetByPhone(ctx, normalizedPhone)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return apperr.Conflict("An adopter with this phone number already exists")
		}
		return nil
	case apperr.IsCode(err, "NOT_FOUND"):
		return nil
	default:
		return err
	}
}
