// Package generator orchestrates the multi-step LLM pipeline that
// turns one candidate story into a persistable article draft.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"iactu/internal/model"
	"iactu/internal/ratelimit"
	"iactu/internal/seo"
	"iactu/internal/taxonomy"
)

const (
	bodyMaxTokens  = 3000
	titleMaxTokens = 100
	tagsMaxTokens  = 150

	bodyTemperature  = 0.7
	titleTemperature = 0.5
	tagsTemperature  = 0.5

	keywordLimit = 10
)

// TextGenerator is the generation service contract, satisfied by the
// Gemini client.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string, maxTokens int32, temperature float32) (string, error)
}

// SlugChecker answers whether an article already claims a slug.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type Generator struct {
	llm     TextGenerator
	slugs   SlugChecker
	limiter ratelimit.Limiter
}

func New(llm TextGenerator, slugs SlugChecker, limiter ratelimit.Limiter) *Generator {
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}
	return &Generator{llm: llm, slugs: slugs, limiter: limiter}
}

const bodySystemPrompt = "Tu es un journaliste expert en Intelligence Artificielle qui écrit des articles de qualité pour un site d'actualités tech."

// GenerateArticle runs the full pipeline for one candidate. A slug
// already claimed by an existing article is a soft skip: the method
// returns (nil, nil). Any generation call failure aborts this
// candidate only.
func (g *Generator) GenerateArticle(ctx context.Context, candidate model.Candidate) (*model.Article, error) {
	slog.Info("generating article", "title", candidate.Title, "source", candidate.SourceName)

	// 1. Long-form body
	content, err := g.generateContent(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	// 2. Search-friendly title, hard-capped at 60 characters
	title, err := g.generateTitle(ctx, candidate.Title)
	if err != nil {
		return nil, fmt.Errorf("generate title: %w", err)
	}

	// 3. Slug; collision means another run already covered this story
	slug := seo.Slugify(title)
	exists, err := g.slugs.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		slog.Warn("article already exists, skipping", "slug", slug)
		return nil, nil
	}

	// 4. Excerpt
	excerpt := seo.Excerpt(content)

	// 5. Keywords
	keywords := seo.ExtractKeywords(content, keywordLimit)

	// 6. Category
	category := taxonomy.Categorize(candidate, content)

	// 7. Tags
	tags, err := g.generateTags(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("generate tags: %w", err)
	}

	// 8. Assembly
	wordCount := seo.WordCount(content)
	article := &model.Article{
		Title:           title,
		Slug:            slug,
		Content:         content,
		Excerpt:         excerpt,
		Category:        category,
		Tags:            tags,
		Keywords:        keywords,
		MetaTitle:       title,
		MetaDescription: excerpt,
		Author:          model.DefaultAuthor,
		ReadTime:        seo.ReadTime(wordCount),
		WordCount:       wordCount,
		Status:          model.StatusDraft,
		PublishedAt:     time.Now(),
		SourceURL:       candidate.Link,
		SourceTitle:     candidate.SourceName,
	}
	if candidate.ImageURL != "" {
		article.FeaturedImage = &model.FeaturedImage{
			URL:    candidate.ImageURL,
			Alt:    title,
			Credit: candidate.SourceName,
		}
	}

	slog.Info("article assembled", "slug", slug, "category", category, "words", wordCount)
	return article, nil
}

func (g *Generator) generateContent(ctx context.Context, candidate model.Candidate) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Tu es un journaliste expert en Intelligence Artificielle.

Écris un article de blog complet et détaillé (minimum 800 mots) sur le sujet suivant :

Titre: %s
Description: %s
Source: %s

L'article doit :
- Être informatif, engageant et accessible au grand public
- Contenir au minimum 800 mots
- Être structuré avec des sous-titres (utilise des balises HTML <h2>, <h3>)
- Inclure des paragraphes bien formatés (balises <p>)
- Expliquer les concepts techniques de manière claire
- Inclure des exemples concrets et des applications pratiques
- Discuter des implications et de l'impact de cette actualité
- Conclure avec une perspective sur l'avenir
- Être optimisé pour le SEO (mots-clés naturellement intégrés)
- Être écrit en français de qualité journalistique

Format de sortie: HTML pur (sans balises <html>, <body>, commence directement avec le contenu)

Ne mentionne pas que tu es une IA. Écris comme un journaliste professionnel.`,
		candidate.Title, candidate.Description, candidate.SourceName)

	content, err := g.llm.Generate(ctx, bodySystemPrompt, prompt, bodyMaxTokens, bodyTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (g *Generator) generateTitle(ctx context.Context, originalTitle string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Améliore ce titre pour le SEO et l'engagement.

"%s"

CONTRAINTE ABSOLUE : Le titre doit faire EXACTEMENT 60 caractères MAXIMUM (espaces compris).

Exigences :
- Accrocheur et informatif
- Mots-clés pertinents
- En français
- IMPÉRATIF : 60 caractères maximum

Réponds UNIQUEMENT avec le titre, sans guillemets, sans explications.
Si le titre dépasse 60 caractères, RACCOURCIS-LE.`, originalTitle)

	raw, err := g.llm.Generate(ctx, "", prompt, titleMaxTokens, titleTemperature)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(raw))
	if utf8.RuneCountInString(title) > seo.TitleMaxRunes {
		slog.Warn("title too long, truncating", "length", utf8.RuneCountInString(title), "max", seo.TitleMaxRunes)
		title = seo.OptimizeTitle(title)
	}
	return title, nil
}

func (g *Generator) generateTags(ctx context.Context, content string) ([]string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	sample := content
	if utf8.RuneCountInString(sample) > 1000 {
		sample = string([]rune(sample)[:1000]) + "..."
	}

	prompt := fmt.Sprintf(`Analyse ce contenu et génère 5-8 tags pertinents pour cet article sur l'IA :

%s

Les tags doivent être :
- Pertinents et spécifiques
- En français
- Courts (1-3 mots)
- Utiles pour la catégorisation

Format: retourne uniquement les tags séparés par des virgules, sans numérotation.`, sample)

	raw, err := g.llm.Generate(ctx, "", prompt, tagsMaxTokens, tagsTemperature)
	if err != nil {
		return nil, err
	}

	return ParseTags(raw), nil
}

// ParseTags splits a comma-separated tag list, trimming entries and
// dropping empty ones.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
