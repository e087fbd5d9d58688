package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify_FoldsAccents(t *testing.T) {
	assert.Equal(t, "l-ethique-de-l-ia-generative", Slugify("L'éthique de l'IA générative"))
	assert.Equal(t, "coeur-du-modele", Slugify("Cœur du modèle"))
}

func TestSlugify_CollapsesSeparators(t *testing.T) {
	assert.Equal(t, "gpt-5-est-la", Slugify("  GPT-5 ... est là !  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestOptimizeTitle_ShortTitleUntouched(t *testing.T) {
	title := "Une avancée majeure en vision par ordinateur"
	assert.Equal(t, title, OptimizeTitle(title))
	assert.NotContains(t, OptimizeTitle(title), "...")
}

func TestOptimizeTitle_OverflowTruncatedAtWord(t *testing.T) {
	// 61 runes, one over the cap.
	title := strings.Repeat("mot ", 15) + "x"
	assert.Equal(t, 61, len([]rune(title)))

	out := OptimizeTitle(title)
	assert.LessOrEqual(t, len([]rune(out)), TitleMaxRunes)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.NotContains(t, strings.TrimSuffix(out, "..."), "  ")
}

func TestOptimizeTitle_ExactCapUntouched(t *testing.T) {
	title := strings.Repeat("a", TitleMaxRunes)
	assert.Equal(t, title, OptimizeTitle(title))
}

func TestExcerpt_StripsMarkupAndCaps(t *testing.T) {
	content := "<p>Premier paragraphe.</p>\n<p>" + strings.Repeat("phrase assez longue ", 20) + "</p>"
	out := Excerpt(content)

	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.LessOrEqual(t, len([]rune(out)), ExcerptMaxRunes)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestExcerpt_ShortContentNoEllipsis(t *testing.T) {
	assert.Equal(t, "Court résumé.", Excerpt("<p>Court   résumé.</p>"))
}

func TestExtractKeywords_FrequencyThenFirstSeen(t *testing.T) {
	text := "transformers transformers modèle apprentissage apprentissage transformers réseaux"
	got := ExtractKeywords(text, 3)
	assert.Equal(t, []string{"transformers", "apprentissage", "modèle"}, got)
}

func TestExtractKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	got := ExtractKeywords("le la les une ia gpt très apprentissage", 10)
	assert.Equal(t, []string{"apprentissage"}, got)
}

func TestExtractKeywords_Limit(t *testing.T) {
	text := "alpha1 beta2 gamma3 delta4 epsilon5"
	assert.Len(t, ExtractKeywords(text, 2), 2)
}

func TestReadTime_Bounds(t *testing.T) {
	assert.Equal(t, 1, ReadTime(0))
	assert.Equal(t, 1, ReadTime(200))
	assert.Equal(t, 2, ReadTime(201))
	assert.Equal(t, 4, ReadTime(800))
}

func TestWordCount_IgnoresMarkup(t *testing.T) {
	assert.Equal(t, 4, WordCount("<h1>Un titre</h1><p>deux mots</p>"))
}
