package social

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"iactu/internal/model"
)

// tweetMaxRunes is the X hard limit.
const tweetMaxRunes = 280

// PostContent renders the per-platform post text for an article.
func PostContent(article *model.Article, platform, siteURL string) string {
	articleURL := fmt.Sprintf("%s/article/%s", siteURL, article.Slug)

	switch platform {
	case model.PlatformTwitter:
		excerpt := article.Excerpt
		if utf8.RuneCountInString(excerpt) > 200 {
			excerpt = string([]rune(excerpt)[:200]) + "..."
		}
		content := fmt.Sprintf("🤖 %s\n\n%s\n\n📖 %s\n\n#IA #AI #Tech",
			article.Title, excerpt, articleURL)
		if utf8.RuneCountInString(content) > tweetMaxRunes {
			content = string([]rune(content)[:tweetMaxRunes-3]) + "..."
		}
		return content

	case model.PlatformLinkedIn:
		return fmt.Sprintf(`🤖 %s

%s

Dans cet article, nous explorons les dernières avancées en %s.

📖 Lire l'article complet: %s

#IntelligenceArtificielle #IA #Tech #Innovation #%s`,
			article.Title, article.Excerpt, article.Category, articleURL,
			strings.ReplaceAll(article.Category, " ", ""))

	default: // facebook
		return fmt.Sprintf(`🤖 %s

%s

📖 Lire l'article complet: %s

#IA #IntelligenceArtificielle #Tech #Innovation`,
			article.Title, article.Excerpt, articleURL)
	}
}
