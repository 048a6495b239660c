package cat_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/shelter/cat"
	"github.com/catcafe/catcafe/internal/shelter/temperament"
	"github.com/catcafe/catcafe/pkg/pointer"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID   map[int64]*cat.Cat
	tags   map[int64][]int
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]*cat.Cat{}, tags: map[int64][]int{}, nextID: 1}
}

func (r *testRepo) List(ctx context.Context) ([]*cat.Cat, error) {
	out := make([]*cat.Cat, 0, len(r.byID))
	for _, c := range r.byID {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (r *testRepo) Get(ctx context.Context, id int64) (*cat.Cat, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Cat")
	}
	copied := *c
	return &copied, nil
}

func (r *testRepo) Create(ctx context.Context, c *cat.Cat, temperamentIDs []int) error {
	c.ID = r.nextID
	r.nextID++
	copied := *c
	r.byID[c.ID] = &copied
	r.tags[c.ID] = temperamentIDs
	return nil
}

func (r *testRepo) Replace(ctx context.Context, c *cat.Cat, temperamentIDs []int, replaceTags bool) error {
	existing, ok := r.byID[c.ID]
	if !ok {
		return apperr.NotFound("Cat")
	}
	if !replaceTags {
		c.Temperament = existing.Temperament
	} else {
		r.tags[c.ID] = temperamentIDs
	}
	copied := *c
	r.byID[c.ID] = &copied
	return nil
}

func (r *testRepo) UpdateAssignment(ctx context.Context, c *cat.Cat) error {
	existing, ok := r.byID[c.ID]
	if !ok {
		return apperr.NotFound("Cat")
	}
	existing.StaffInCharge = c.StaffInCharge
	existing.AdopterID = c.AdopterID
	existing.IsAdopted = c.IsAdopted
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Cat")
	}
	delete(r.byID, id)
	delete(r.tags, id)
	return nil
}

func (r *testRepo) ListByStaff(ctx context.Context, staffID string) ([]*cat.Cat, error) {
	var out []*cat.Cat
	for _, c := range r.byID {
		if c.StaffInCharge != nil && *c.StaffInCharge == staffID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *testRepo) ListByAdopter(ctx context.Context, adopterID int64) ([]*cat.Cat, error) {
	var out []*cat.Cat
	for _, c := range r.byID {
		if c.AdopterID != nil && *c.AdopterID == adopterID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *testRepo) CountByAdopter(ctx context.Context, adopterID int64) (int64, error) {
	var count int64
	for _, c := range r.byID {
		if c.AdopterID != nil && *c.AdopterID == adopterID {
			count++
		}
	}
	return count, nil
}

type testDirectory struct {
	staff    map[string]bool
	adopters map[int64]bool
}

func (d *testDirectory) staffExists(ctx context.Context, id string) (bool, error) {
	return d.staff[id], nil
}

func (d *testDirectory) adopterExists(ctx context.Context, id int64) (bool, error) {
	return d.adopters[id], nil
}

type staffDirFunc func(context.Context, string) (bool, error)

func (f staffDirFunc) Exists(ctx context.Context, id string) (bool, error) { return f(ctx, id) }

type adopterDirFunc func(context.Context, int64) (bool, error)

func (f adopterDirFunc) Exists(ctx context.Context, id int64) (bool, error) { return f(ctx, id) }

// testVocabulary canonicalizes against a fixed seeded set.
type testVocabulary struct{}

func (testVocabulary) Canonicalize(ctx context.Context, names []string) ([]temperament.Temperament, error) {
	vocabulary := map[string]temperament.Temperament{
		"playful": {ID: 1, Name: "Playful"},
		"shy":     {ID: 2, Name: "Shy"},
		"curious": {ID: 3, Name: "Curious"},
		"calm":    {ID: 4, Name: "Calm"},
	}

	var out []temperament.Temperament
	seen := map[int]bool{}
	for _, name := range names {
		tag, ok := vocabulary[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   cat.FieldTemperament,
				Message: fmt.Sprintf("%q is not a known temperament", name),
			})
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		out = append(out, tag)
	}
	return out, nil
}

// -------------------------
// Helpers
// -------------------------

const knownStaffID = "0d9a4e7e-2f6b-4a5e-9c1d-8b3f5a7e6c4d"

func newTestService(repo *testRepo) *cat.Service {
	directory := &testDirectory{
		staff:    map[string]bool{knownStaffID: true},
		adopters: map[int64]bool{7: true},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cat.NewService(repo, staffDirFunc(directory.staffExists), adopterDirFunc(directory.adopterExists), testVocabulary{}, logger)
}

func validCandidate() *cat.Cat {
	staffID := knownStaffID
	return &cat.Cat{
		Name:          "Whiskers",
		Age:           3,
		Breed:         "Tabby",
		DateJoined:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		Vaccinated:    true,
		Temperament:   []string{"Playful", "Shy"},
		StaffInCharge: &staffID,
	}
}

// -------------------------
// Tests
// -------------------------

func TestCreateCat_ClearsAdopterWhenNotAdopted(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	candidate.IsAdopted = false
	candidate.AdopterID = pointer.To(int64(7)) // supplied but must be discarded

	require.NoError(t, service.CreateCat(context.Background(), candidate))

	stored, err := repo.Get(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAdopted)
	assert.Nil(t, stored.AdopterID)
}

func TestCreateCat_AdoptedNeedsAdopter(t *testing.T) {
	service := newTestService(newTestRepo())

	candidate := validCandidate()
	candidate.IsAdopted = true

	err := service.CreateCat(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "REFERENTIAL_VIOLATION"))
}

func TestCreateCat_AdoptedWithKnownAdopter(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	candidate.IsAdopted = true
	candidate.AdopterID = pointer.To(int64(7))

	require.NoError(t, service.CreateCat(context.Background(), candidate))

	stored, err := repo.Get(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdopted)
	require.NotNil(t, stored.AdopterID)
	assert.EqualValues(t, 7, *stored.AdopterID)
}

func TestCreateCat_UnknownAdopter(t *testing.T) {
	service := newTestService(newTestRepo())

	candidate := validCandidate()
	candidate.IsAdopted = true
	candidate.AdopterID = pointer.To(int64(999))

	err := service.CreateCat(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "REFERENTIAL_VIOLATION"))
}

func TestCreateCat_UnknownStaff(t *testing.T) {
	service := newTestService(newTestRepo())

	candidate := validCandidate()
	candidate.StaffInCharge = pointer.To("2c3f18aa-5f1e-4f0d-b0a9-6d4e8c7b5a3f")

	err := service.CreateCat(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "REFERENTIAL_VIOLATION"))
}

func TestCreateCat_MissingStaff(t *testing.T) {
	service := newTestService(newTestRepo())

	candidate := validCandidate()
	candidate.StaffInCharge = nil

	err := service.CreateCat(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestCreateCat_CanonicalizesTemperament(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	candidate.Temperament = []string{"playful", "SHY", "shy"}

	require.NoError(t, service.CreateCat(context.Background(), candidate))
	assert.Equal(t, []string{"Playful", "Shy"}, candidate.Temperament)
	assert.Equal(t, []int{1, 2}, repo.tags[candidate.ID])
}

func TestCreateCat_InvalidTemperament(t *testing.T) {
	service := newTestService(newTestRepo())

	candidate := validCandidate()
	candidate.Temperament = []string{"Playful", "Ferocious"}

	err := service.CreateCat(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestListCats_TemperamentFilterANDSemantics(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	both := validCandidate()
	both.Name = "Both"
	require.NoError(t, service.CreateCat(context.Background(), both))

	onlyPlayful := validCandidate()
	onlyPlayful.Name = "OnlyPlayful"
	onlyPlayful.Temperament = []string{"Playful"}
	require.NoError(t, service.CreateCat(context.Background(), onlyPlayful))

	cats, err := service.ListCats(context.Background(), cat.Filter{Temperaments: []string{"playful", "shy"}})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Both", cats[0].Name)
}

func TestListCats_AdoptionFilterTriState(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	adopted := validCandidate()
	adopted.Name = "Adopted"
	adopted.IsAdopted = true
	adopted.AdopterID = pointer.To(int64(7))
	require.NoError(t, service.CreateCat(context.Background(), adopted))

	resident := validCandidate()
	resident.Name = "Resident"
	require.NoError(t, service.CreateCat(context.Background(), resident))

	all, err := service.ListCats(context.Background(), cat.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	adoptedOnly := true
	cats, err := service.ListCats(context.Background(), cat.Filter{IsAdopted: &adoptedOnly})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Adopted", cats[0].Name)

	adoptedOnly = false
	cats, err = service.ListCats(context.Background(), cat.Filter{IsAdopted: &adoptedOnly})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Resident", cats[0].Name)
}

func TestListCats_UnknownFilterToken(t *testing.T) {
	service := newTestService(newTestRepo())

	_, err := service.ListCats(context.Background(), cat.Filter{Temperaments: []string{"ferocious"}})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestPatchAssignment_AdopterForcesAdoptionFlag(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	require.NoError(t, service.CreateCat(context.Background(), candidate))

	patched, err := service.PatchAssignment(context.Background(), candidate.ID, cat.AssignmentPatch{
		AdopterID: pointer.To(int64(7)),
	})
	require.NoError(t, err)

	assert.True(t, patched.IsAdopted)
	require.NotNil(t, patched.AdopterID)
	assert.EqualValues(t, 7, *patched.AdopterID)

	// Untouched fields survive.
	require.NotNil(t, patched.StaffInCharge)
	assert.Equal(t, knownStaffID, *patched.StaffInCharge)
	assert.Equal(t, []string{"Playful", "Shy"}, patched.Temperament)
}

func TestPatchAssignment_StaffOnly(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	require.NoError(t, service.CreateCat(context.Background(), candidate))

	_, err := service.PatchAssignment(context.Background(), candidate.ID, cat.AssignmentPatch{
		StaffInCharge: pointer.To("2c3f18aa-5f1e-4f0d-b0a9-6d4e8c7b5a3f"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "REFERENTIAL_VIOLATION"))

	stored, err := repo.Get(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAdopted, "a failed patch must not change the record")
}

func TestPatchAssignment_CatNotFound(t *testing.T) {
	service := newTestService(newTestRepo())

	_, err := service.PatchAssignment(context.Background(), 42, cat.AssignmentPatch{AdopterID: pointer.To(int64(7))})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestReplaceCat_RunsFullPipeline(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	require.NoError(t, service.CreateCat(context.Background(), candidate))

	replacement := validCandidate()
	replacement.Name = "Mochi"
	replacement.Temperament = []string{"calm"}

	replaced, err := service.ReplaceCat(context.Background(), candidate.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, "Mochi", replaced.Name)
	assert.Equal(t, []int{4}, repo.tags[candidate.ID])
}

func TestReplaceCat_NotFound(t *testing.T) {
	service := newTestService(newTestRepo())

	_, err := service.ReplaceCat(context.Background(), 42, validCandidate())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestDeleteCat(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	candidate := validCandidate()
	require.NoError(t, service.CreateCat(context.Background(), candidate))
	require.NoError(t, service.DeleteCat(context.Background(), candidate.ID))

	err := service.DeleteCat(context.Background(), candidate.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
