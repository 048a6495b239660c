package cat

import (
	"context"
	"log/slog"
	"slices"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/validate"
	"github.com/catcafe/catcafe/internal/shelter/temperament"
	"github.com/catcafe/catcafe/pkg/slice"
)

// Service enforces the registry's referential rules: staff-in-charge must
// resolve, temperament tags must come from the fixed vocabulary, and the
// adoption flag and adopter reference move together.
type Service struct {
	repo       Repository
	staff      StaffDirectory
	adopters   AdopterDirectory
	vocabulary Vocabulary
	logger     *slog.Logger
}

func NewService(repo Repository, staff StaffDirectory, adopters AdopterDirectory, vocabulary Vocabulary, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		staff:      staff,
		adopters:   adopters,
		vocabulary: vocabulary,
		logger:     logger,
	}
}

func (service *Service) GetCat(ctx context.Context, id int64) (*Cat, error) {
	return service.repo.Get(ctx, id)
}

// ListCats retrieves every cat and applies the filter in memory: AND
// semantics over temperament tags and a tri-state adoption flag. Filter
// tokens are canonicalized against the vocabulary first, so an unknown tag
// is a validation error rather than a silent empty result.
func (service *Service) ListCats(ctx context.Context, filter Filter) ([]*Cat, error) {
	cats, err := service.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(filter.Temperaments) > 0 {
		canonical, err := service.vocabulary.Canonicalize(ctx, filter.Temperaments)
		if err != nil {
			return nil, err
		}
		cats = filterByTemperaments(cats, canonical)
	}

	if filter.IsAdopted != nil {
		cats = slice.Filter(cats, func(cat *Cat) bool {
			return cat.IsAdopted == *filter.IsAdopted
		})
	}

	return cats, nil
}

// CreateCat runs the full referential pipeline and persists the cat together
// with its temperament associations.
func (service *Service) CreateCat(ctx context.Context, candidate *Cat) error {
	canonicalIDs, err := service.validateCandidate(ctx, candidate)
	if err != nil {
		return err
	}

	if err := service.repo.Create(ctx, candidate, canonicalIDs); err != nil {
		return err
	}

	service.logger.Info("cat_created", slog.Int64("cat_id", candidate.ID))
	return nil
}

// ReplaceCat overwrites every scalar field of an existing cat using the same
// validation pipeline as CreateCat. A supplied temperament set fully replaces
// the prior associations; a nil set leaves them as they are.
func (service *Service) ReplaceCat(ctx context.Context, id int64, candidate *Cat) (*Cat, error) {
	replaceTags := candidate.Temperament != nil

	canonicalIDs, err := service.validateCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	candidate.ID = id
	if err := service.repo.Replace(ctx, candidate, canonicalIDs, replaceTags); err != nil {
		return nil, err
	}

	service.logger.Info("cat_replaced", slog.Int64("cat_id", id))
	return service.repo.Get(ctx, id)
}

// PatchAssignment changes only the staff/adopter references, merging supplied
// fields onto the existing record. Supplying an adopter forces the adoption
// flag to true; temperament tags are never touched by this path.
func (service *Service) PatchAssignment(ctx context.Context, id int64, patch AssignmentPatch) (*Cat, error) {
	if patch.StaffInCharge != nil {
		if err := service.ensureStaffExists(ctx, *patch.StaffInCharge); err != nil {
			return nil, err
		}
	}
	if patch.AdopterID != nil {
		if err := service.ensureAdopterExists(ctx, *patch.AdopterID); err != nil {
			return nil, err
		}
	}

	cat, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.StaffInCharge != nil {
		cat.StaffInCharge = patch.StaffInCharge
	}
	if patch.AdopterID != nil {
		cat.AdopterID = patch.AdopterID
		cat.IsAdopted = true
	}

	if err := service.repo.UpdateAssignment(ctx, cat); err != nil {
		return nil, err
	}

	service.logger.Info("cat_assignment_patched", slog.Int64("cat_id", id))
	return cat, nil
}

func (service *Service) DeleteCat(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("cat_deleted", slog.Int64("cat_id", id))
	return nil
}

func (service *Service) ListByStaff(ctx context.Context, staffID string) ([]*Cat, error) {
	return service.repo.ListByStaff(ctx, staffID)
}

func (service *Service) ListByAdopter(ctx context.Context, adopterID int64) ([]*Cat, error) {
	return service.repo.ListByAdopter(ctx, adopterID)
}

// CountByAdopter reports how many cats an adopter currently holds. The
// adopter directory consults it before allowing deletion.
func (service *Service) CountByAdopter(ctx context.Context, adopterID int64) (int64, error) {
	return service.repo.CountByAdopter(ctx, adopterID)
}

// validateCandidate is the shared create/replace pipeline. It mutates the
// candidate: temperament tags are rewritten to their canonical casing and a
// supplied adopter reference is cleared whenever the adoption flag is false.
func (service *Service) validateCandidate(ctx context.Context, candidate *Cat) ([]int, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, candidate.Name).MaxLen(FieldName, candidate.Name, 100)
	validator.Positive(FieldAge, candidate.Age)
	validator.Required(FieldBreed, candidate.Breed).MaxLen(FieldBreed, candidate.Breed, 100)
	validator.Custom(FieldDateJoined, candidate.DateJoined.IsZero(), "This field is required")

	if candidate.StaffInCharge == nil {
		validator.Required(FieldStaffInCharge, "")
	} else {
		validator.UUID(FieldStaffInCharge, *candidate.StaffInCharge)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureStaffExists(ctx, *candidate.StaffInCharge); err != nil {
		return nil, err
	}

	canonical, err := service.vocabulary.Canonicalize(ctx, candidate.Temperament)
	if err != nil {
		return nil, err
	}

	if candidate.IsAdopted {
		if candidate.AdopterID == nil {
			return nil, apperr.ReferentialViolation("AdopterId must be specified when the cat is adopted")
		}
		if err := service.ensureAdopterExists(ctx, *candidate.AdopterID); err != nil {
			return nil, err
		}
	} else {
		// A non-adopted cat never carries an adopter reference, even if the
		// caller supplied one.
		candidate.AdopterID = nil
	}

	candidate.Temperament = temperamentNames(canonical)
	return temperamentIDs(canonical), nil
}

func (service *Service) ensureStaffExists(ctx context.Context, staffID string) error {
	exists, err := service.staff.Exists(ctx, staffID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ReferentialViolation("Staff not found")
	}
	return nil
}

func (service *Service) ensureAdopterExists(ctx context.Context, adopterID int64) error {
	exists, err := service.adopters.Exists(ctx, adopterID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ReferentialViolation("Adopter not found")
	}
	return nil
}

func filterByTemperaments(cats []*Cat, wanted []temperament.Temperament) []*Cat {
	return slice.Filter(cats, func(cat *Cat) bool {
		for _, tag := range wanted {
			if !slices.Contains(cat.Temperament, tag.Name) {
				return false
			}
		}
		return true
	})
}

func temperamentNames(tags []temperament.Temperament) []string {
	return slice.Map(tags, func(tag temperament.Temperament) string { return tag.Name })
}

func temperamentIDs(tags []temperament.Temperament) []int {
	return slice.Map(tags, func(tag temperament.Temperament) int { return tag.ID })
}
