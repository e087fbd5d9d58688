package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iactu/internal/model"
)

// fakeLLM answers successive Generate calls from a script keyed by a
// prompt marker, so step order stays visible in the tests.
type fakeLLM struct {
	body  string
	title string
	tags  string

	bodyErr  error
	titleErr error
	tagsErr  error

	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, system, prompt string, maxTokens int32, temperature float32) (string, error) {
	f.calls++
	switch {
	case strings.Contains(prompt, "article de blog"):
		return f.body, f.bodyErr
	case strings.Contains(prompt, "Améliore ce titre"):
		return f.title, f.titleErr
	case strings.Contains(prompt, "tags pertinents"):
		return f.tags, f.tagsErr
	}
	return "", errors.New("unexpected prompt")
}

type fakeSlugs struct {
	existing map[string]bool
	err      error
	asked    []string
}

func (f *fakeSlugs) SlugExists(ctx context.Context, slug string) (bool, error) {
	f.asked = append(f.asked, slug)
	return f.existing[slug], f.err
}

func newCandidate() model.Candidate {
	return model.Candidate{
		Title:       "OpenAI dévoile un nouveau modèle",
		Link:        "https://news.example/openai",
		Description: "Annonce du jour",
		SourceName:  "Example News",
	}
}

func TestGenerateArticle_AssemblesDraft(t *testing.T) {
	llm := &fakeLLM{
		body:  "<h2>Contexte</h2><p>" + strings.Repeat("mot ", 400) + "</p>",
		title: "Nouveau modèle OpenAI",
		tags:  "ia, openai, modèle",
	}
	slugs := &fakeSlugs{}

	article, err := New(llm, slugs, nil).GenerateArticle(context.Background(), newCandidate())
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, "Nouveau modèle OpenAI", article.Title)
	assert.Equal(t, "nouveau-modele-openai", article.Slug)
	assert.Equal(t, article.Title, article.MetaTitle)
	assert.Equal(t, article.Excerpt, article.MetaDescription)
	assert.Equal(t, []string{"ia", "openai", "modèle"}, article.Tags)
	assert.Equal(t, model.StatusDraft, article.Status)
	assert.Equal(t, model.DefaultAuthor, article.Author)
	assert.Equal(t, "https://news.example/openai", article.SourceURL)
	assert.Equal(t, "Example News", article.SourceTitle)
	assert.Equal(t, 401, article.WordCount)
	assert.Equal(t, 3, article.ReadTime)
	assert.NotEmpty(t, article.Keywords)
	assert.False(t, article.PublishedAt.IsZero())
	assert.Equal(t, 3, llm.calls)
}

func TestGenerateArticle_SlugCollisionIsSoftSkip(t *testing.T) {
	llm := &fakeLLM{
		body:  "<p>corps</p>",
		title: "Titre déjà couvert",
		tags:  "ia",
	}
	slugs := &fakeSlugs{existing: map[string]bool{"titre-deja-couvert": true}}

	article, err := New(llm, slugs, nil).GenerateArticle(context.Background(), newCandidate())
	assert.NoError(t, err)
	assert.Nil(t, article)
	assert.Equal(t, []string{"titre-deja-couvert"}, slugs.asked)
}

func TestGenerateArticle_SlugCheckErrorPropagates(t *testing.T) {
	llm := &fakeLLM{body: "<p>corps</p>", title: "Titre", tags: "ia"}
	slugs := &fakeSlugs{err: errors.New("mongo down")}

	article, err := New(llm, slugs, nil).GenerateArticle(context.Background(), newCandidate())
	assert.Nil(t, article)
	assert.ErrorContains(t, err, "mongo down")
}

func TestGenerateArticle_BodyFailureAborts(t *testing.T) {
	llm := &fakeLLM{bodyErr: errors.New("quota exceeded")}

	article, err := New(llm, &fakeSlugs{}, nil).GenerateArticle(context.Background(), newCandidate())
	assert.Nil(t, article)
	assert.ErrorContains(t, err, "generate content")
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateArticle_TitleStrippedAndCapped(t *testing.T) {
	long := strings.Repeat("Actualité ", 10) // 100 runes, far over the cap
	llm := &fakeLLM{
		body:  "<p>corps</p>",
		title: `"` + long + `"`,
		tags:  "ia",
	}

	article, err := New(llm, &fakeSlugs{}, nil).GenerateArticle(context.Background(), newCandidate())
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.NotContains(t, article.Title, `"`)
	assert.LessOrEqual(t, len([]rune(article.Title)), 60)
	assert.True(t, strings.HasSuffix(article.Title, "..."))
}

func TestGenerateArticle_CandidateImageCarriedOver(t *testing.T) {
	llm := &fakeLLM{body: "<p>corps</p>", title: "Titre unique", tags: "ia"}
	candidate := newCandidate()
	candidate.ImageURL = "https://img.example/photo.jpg"

	article, err := New(llm, &fakeSlugs{}, nil).GenerateArticle(context.Background(), candidate)
	require.NoError(t, err)
	require.NotNil(t, article.FeaturedImage)
	assert.Equal(t, "https://img.example/photo.jpg", article.FeaturedImage.URL)
	assert.Equal(t, article.Title, article.FeaturedImage.Alt)
	assert.Equal(t, "Example News", article.FeaturedImage.Credit)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"ia", "deep learning", "gpt"}, ParseTags(" ia , deep learning,, gpt ,"))
	assert.Empty(t, ParseTags("   "))
}
