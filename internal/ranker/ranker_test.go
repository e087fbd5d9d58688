package ranker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"iactu/internal/model"
)

func candidate(title, image string, age time.Duration) model.Candidate {
	return model.Candidate{
		Title:       title,
		ImageURL:    image,
		PublishedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(-age),
	}
}

func TestDeduplicate_FirstOccurrenceWins(t *testing.T) {
	in := []model.Candidate{
		{Title: "GPT-5 annoncé", SourceName: "a"},
		{Title: "  gpt-5 annoncé ", SourceName: "b"},
		{Title: "Autre sujet", SourceName: "c"},
	}

	out := Deduplicate(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].SourceName)
	assert.Equal(t, "Autre sujet", out[1].Title)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	in := []model.Candidate{
		{Title: "Un"}, {Title: "un"}, {Title: "Deux"},
	}
	once := Deduplicate(in)
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestSelectBest_ImageBearersFirst(t *testing.T) {
	in := []model.Candidate{
		candidate("récent sans image", "", time.Hour),
		candidate("ancien avec image", "https://img.example/a.jpg", 48*time.Hour),
		candidate("très récent sans image", "", 0),
	}

	out := SelectBest(in, 3)
	assert.Equal(t, "ancien avec image", out[0].Title)
	assert.Equal(t, "très récent sans image", out[1].Title)
	assert.Equal(t, "récent sans image", out[2].Title)
}

func TestSelectBest_RecencyWithinGroup(t *testing.T) {
	in := []model.Candidate{
		candidate("vieille photo", "https://img.example/old.jpg", 72*time.Hour),
		candidate("photo fraîche", "https://img.example/new.jpg", time.Hour),
	}

	out := SelectBest(in, 2)
	assert.Equal(t, "photo fraîche", out[0].Title)
	assert.Equal(t, "vieille photo", out[1].Title)
}

func TestSelectBest_BoundedByCountAndUniques(t *testing.T) {
	in := []model.Candidate{
		candidate("a", "", time.Hour),
		candidate("A", "", 2*time.Hour),
		candidate("b", "", 3*time.Hour),
	}

	assert.Len(t, SelectBest(in, 5), 2)
	assert.Len(t, SelectBest(in, 1), 1)
	assert.Empty(t, SelectBest(in, 0))
	assert.Empty(t, SelectBest(nil, 3))
}

func TestSelectBest_AllIdenticalTitles(t *testing.T) {
	in := []model.Candidate{
		{Title: "même titre", SourceName: "premier"},
		{Title: "même titre", SourceName: "second"},
		{Title: "même titre", SourceName: "troisième"},
	}

	out := SelectBest(in, 3)
	assert.Len(t, out, 1)
	assert.Equal(t, "premier", out[0].SourceName)
}

func TestSelectBest_DoesNotMutateInput(t *testing.T) {
	in := []model.Candidate{
		candidate("b sans image", "", time.Hour),
		candidate("a avec image", "https://img.example/a.jpg", 2*time.Hour),
	}
	SelectBest(in, 2)
	assert.Equal(t, "b sans image", in[0].Title)
}
