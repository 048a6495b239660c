package temperament_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/shelter/temperament"
)

// testRepo serves the seeded vocabulary from memory.
type testRepo struct {
	vocabulary []temperament.Temperament
}

func newTestRepo() *testRepo {
	return &testRepo{vocabulary: []temperament.Temperament{
		{ID: 1, Name: "Playful"},
		{ID: 2, Name: "Shy"},
		{ID: 3, Name: "Curious"},
		{ID: 4, Name: "Calm"},
	}}
}

func (r *testRepo) List(ctx context.Context) ([]temperament.Temperament, error) {
	return r.vocabulary, nil
}

func (r *testRepo) FindByNames(ctx context.Context, names []string) ([]temperament.Temperament, error) {
	var out []temperament.Temperament
	for _, t := range r.vocabulary {
		for _, name := range names {
			if t.Name == name {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func newTestService() *temperament.Service {
	return temperament.NewService(newTestRepo(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCanonicalize_CaseInsensitive(t *testing.T) {
	service := newTestService()

	tags, err := service.Canonicalize(context.Background(), []string{"playful", "SHY", " Curious "})
	require.NoError(t, err)

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.Equal(t, []string{"Playful", "Shy", "Curious"}, names)
}

func TestCanonicalize_PreservesCallerOrder(t *testing.T) {
	service := newTestService()

	tags, err := service.Canonicalize(context.Background(), []string{"shy", "playful"})
	require.NoError(t, err)

	require.Len(t, tags, 2)
	assert.Equal(t, "Shy", tags[0].Name)
	assert.Equal(t, "Playful", tags[1].Name)
}

func TestCanonicalize_DeduplicatesTokens(t *testing.T) {
	service := newTestService()

	tags, err := service.Canonicalize(context.Background(), []string{"calm", "Calm", "CALM"})
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestCanonicalize_UnknownToken(t *testing.T) {
	service := newTestService()

	_, err := service.Canonicalize(context.Background(), []string{"playful", "ferocious"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Contains(t, err.Error(), "Validation failed")
}

func TestCanonicalize_EmptyInput(t *testing.T) {
	service := newTestService()

	tags, err := service.Canonicalize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
