// Package taxonomy assigns articles to the fixed category set via
// keyword scoring. The classifier is stateless and deterministic; the
// keyword table is loaded once and never mutated.
package taxonomy

import (
	"strings"

	"iactu/internal/model"
)

type entry struct {
	category string
	keywords []string
}

// Evaluation order is fixed: on a score tie the earlier entry wins.
var entries = []entry{
	{"Machine Learning", []string{"machine learning", "apprentissage automatique", "ml", "modèle"}},
	{"Deep Learning", []string{"deep learning", "apprentissage profond", "réseau de neurones", "neural network"}},
	{"NLP", []string{"nlp", "traitement du langage", "natural language", "chatbot", "gpt", "llm"}},
	{"Computer Vision", []string{"vision par ordinateur", "computer vision", "reconnaissance d'image", "détection"}},
	{"Robotique", []string{"robot", "robotique", "automatisation", "drone"}},
	{"IA Générative", []string{"génératif", "generative", "dalle", "midjourney", "stable diffusion", "génération"}},
	{"Éthique IA", []string{"éthique", "biais", "régulation", "législation", "responsabilité"}},
	{"Recherche", []string{"recherche", "étude", "paper", "publication", "découverte"}},
}

// Categorize scores each category by how many of its keywords appear
// as case-insensitive substrings of title + description + body, and
// returns the strict maximum. All-zero scores fall back to
// "Actualités".
func Categorize(candidate model.Candidate, body string) string {
	text := strings.ToLower(candidate.Title + " " + candidate.Description + " " + body)

	best := model.CategoryFallback
	maxScore := 0

	for _, e := range entries {
		score := 0
		for _, keyword := range e.keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = e.category
		}
	}

	return best
}
