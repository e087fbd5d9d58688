// Package seo holds the deterministic derivations the generator runs
// at assembly time: slugs, excerpts, title truncation, keyword
// extraction and read-time estimation. Everything here is pure; the
// entity stays a plain record with no lifecycle hooks.
package seo

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	// TitleMaxRunes is the hard cap for titles.
	TitleMaxRunes = 60
	// ExcerptMaxRunes is the hard cap for excerpts.
	ExcerptMaxRunes = 160
	// wordsPerMinute drives the read-time estimate.
	wordsPerMinute = 200
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// French transliterations the rune-by-rune pass below cannot express.
var multiRune = strings.NewReplacer(
	"œ", "oe", "Œ", "oe",
	"æ", "ae", "Æ", "ae",
)

// accentFold maps accented letters used in French to their ASCII base.
var accentFold = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a',
	'ç': 'c',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'î': 'i', 'ï': 'i', 'ì': 'i',
	'ñ': 'n',
	'ó': 'o', 'ô': 'o', 'ö': 'o', 'ò': 'o', 'õ': 'o',
	'ú': 'u', 'û': 'u', 'ü': 'u', 'ù': 'u',
	'ý': 'y', 'ÿ': 'y',
}

// Slugify derives a lowercase URL-safe identifier from a title.
// Accented letters fold to ASCII, anything else non-alphanumeric
// becomes a hyphen, and runs of hyphens collapse.
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = multiRune.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range text {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// truncateAtWord cuts s to at most max runes including the trailing
// ellipsis, breaking at the last space boundary when one exists.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max-3])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}

// OptimizeTitle enforces the title length cap. Input within the cap
// passes through untouched; overflow is truncated at a word boundary
// with an ellipsis marker.
func OptimizeTitle(title string) string {
	return truncateAtWord(strings.TrimSpace(title), TitleMaxRunes)
}

// Excerpt strips markup from the body, collapses whitespace, and caps
// the result at the excerpt limit with word-boundary truncation.
func Excerpt(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	cleaned := strings.Join(strings.Fields(text), " ")
	return truncateAtWord(cleaned, ExcerptMaxRunes)
}

// French stop words excluded from keyword extraction.
var stopWords = map[string]bool{
	"le": true, "la": true, "les": true, "un": true, "une": true, "des": true,
	"de": true, "du": true, "et": true, "ou": true, "mais": true, "donc": true,
	"or": true, "ni": true, "car": true, "ce": true, "cette": true, "ces": true,
	"mon": true, "ton": true, "son": true, "ma": true, "ta": true, "sa": true,
	"mes": true, "tes": true, "ses": true, "notre": true, "votre": true,
	"leur": true, "nos": true, "vos": true, "leurs": true, "je": true,
	"tu": true, "il": true, "elle": true, "nous": true, "vous": true,
	"ils": true, "elles": true, "on": true, "qui": true, "que": true,
	"quoi": true, "dont": true, "où": true, "dans": true, "sur": true,
	"sous": true, "avec": true, "sans": true, "pour": true, "par": true,
	"en": true, "au": true, "aux": true, "à": true, "est": true, "sont": true,
	"être": true, "avoir": true, "fait": true, "faire": true, "plus": true,
	"moins": true, "très": true, "bien": true, "tout": true, "tous": true,
}

// ExtractKeywords tokenizes the text, drops stop words and short
// tokens, and returns the top limit words by descending frequency.
// Ties keep first-seen order.
func ExtractKeywords(text string, limit int) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(tagRe.ReplaceAllString(text, " ")) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	var order []string
	for _, word := range strings.Fields(b.String()) {
		if len([]rune(word)) <= 3 || stopWords[word] {
			continue
		}
		if _, seen := counts[word]; !seen {
			firstSeen[word] = len(order)
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// WordCount counts words in the body with markup removed.
func WordCount(content string) int {
	return len(strings.Fields(tagRe.ReplaceAllString(content, " ")))
}

// ReadTime estimates reading minutes for a word count, never below 1.
func ReadTime(wordCount int) int {
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
