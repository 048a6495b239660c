package temperament

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/catcafe/catcafe/internal/platform/apperr"
)

// titleCaser produces the canonical display casing of a vocabulary token.
// Casing is only a fast path: the seeded vocabulary itself has the final say
// on which names exist.
var titleCaser = cases.Title(language.English)

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

func (service *Service) List(ctx context.Context) ([]Temperament, error) {
	return service.repo.List(ctx)
}

// Canonicalize maps caller-supplied temperament tokens onto vocabulary
// entries, ignoring case and duplicate tokens. Any token that does not
// resolve to a seeded entry fails the whole call with a validation error.
func (service *Service) Canonicalize(ctx context.Context, names []string) ([]Temperament, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(names))
	canonical := make([]string, 0, len(names))
	for _, name := range names {
		cased := titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
		if cased == "" {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldTemperament,
				Message: "Temperament tags must not be empty",
			})
		}
		if _, dup := seen[cased]; dup {
			continue
		}
		seen[cased] = struct{}{}
		canonical = append(canonical, cased)
	}

	matched, err := service.repo.FindByNames(ctx, canonical)
	if err != nil {
		return nil, err
	}

	if len(matched) != len(canonical) {
		found := make(map[string]struct{}, len(matched))
		for _, t := range matched {
			found[t.Name] = struct{}{}
		}
		for _, name := range canonical {
			if _, ok := found[name]; !ok {
				return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
					Field:   FieldTemperament,
					Message: fmt.Sprintf("%q is not a known temperament", name),
				})
			}
		}
	}

	// Preserve the caller's token order, not the database's.
	byName := make(map[string]Temperament, len(matched))
	for _, t := range matched {
		byName[t.Name] = t
	}
	ordered := make([]Temperament, 0, len(canonical))
	for _, name := range canonical {
		ordered = append(ordered, byName[name])
	}

	return ordered, nil
}
