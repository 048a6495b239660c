package staff_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/shelter/staff"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]*staff.Staff
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]*staff.Staff{}}
}

func (r *testRepo) List(ctx context.Context) ([]*staff.Staff, error) {
	out := make([]*staff.Staff, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *testRepo) Get(ctx context.Context, id string) (*staff.Staff, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Staff")
	}
	copied := *s
	return &copied, nil
}

func (r *testRepo) Create(ctx context.Context, s *staff.Staff) error {
	copied := *s
	r.byID[s.ID] = &copied
	return nil
}

func (r *testRepo) Update(ctx context.Context, s *staff.Staff) error {
	if _, ok := r.byID[s.ID]; !ok {
		return apperr.NotFound("Staff")
	}
	copied := *s
	r.byID[s.ID] = &copied
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Staff")
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func newTestService(repo *testRepo) *staff.Service {
	return staff.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validMember() *staff.Staff {
	return &staff.Staff{
		Name:       "Maria",
		LastName:   "Lopez",
		Age:        31,
		DateJoined: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Role:       "Caretaker",
	}
}

// -------------------------
// Tests
// -------------------------

func TestCreateStaff_AssignsID(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	member := validMember()
	require.NoError(t, service.CreateStaff(context.Background(), member))

	assert.NotEmpty(t, member.ID, "service must generate the id")
	stored, err := repo.Get(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", stored.Name)
}

func TestCreateStaff_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*staff.Staff)
	}{
		{"missing_name", func(s *staff.Staff) { s.Name = "" }},
		{"missing_last_name", func(s *staff.Staff) { s.LastName = "" }},
		{"zero_age", func(s *staff.Staff) { s.Age = 0 }},
		{"missing_role", func(s *staff.Staff) { s.Role = "" }},
		{"zero_date_joined", func(s *staff.Staff) { s.DateJoined = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newTestRepo())

			member := validMember()
			tt.mutate(member)

			err := service.CreateStaff(context.Background(), member)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		})
	}
}

func TestUpdateStaff_MergesSuppliedFields(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	member := validMember()
	require.NoError(t, service.CreateStaff(context.Background(), member))

	newRole := "Veterinarian"
	updated, err := service.UpdateStaff(context.Background(), member.ID, staff.UpdateInput{Role: &newRole})
	require.NoError(t, err)

	assert.Equal(t, newRole, updated.Role)
	assert.Equal(t, member.Name, updated.Name)
	assert.Equal(t, member.Age, updated.Age)
}

func TestUpdateStaff_RejectsInvalidMerge(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	member := validMember()
	require.NoError(t, service.CreateStaff(context.Background(), member))

	empty := ""
	_, err := service.UpdateStaff(context.Background(), member.ID, staff.UpdateInput{Name: &empty})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestUpdateStaff_NotFound(t *testing.T) {
	service := newTestService(newTestRepo())

	newRole := "Veterinarian"
	_, err := service.UpdateStaff(context.Background(), "missing-id", staff.UpdateInput{Role: &newRole})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestDeleteStaff(t *testing.T) {
	repo := newTestRepo()
	service := newTestService(repo)

	member := validMember()
	require.NoError(t, service.CreateStaff(context.Background(), member))
	require.NoError(t, service.DeleteStaff(context.Background(), member.ID))

	err := service.DeleteStaff(context.Background(), member.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
