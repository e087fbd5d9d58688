// Package images finds a featured image for a generated article. The
// chain never fails: source-page scraping, then stock-photo search
// (Pexels, then Unsplash), then a static placeholder.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"iactu/internal/model"
	"iactu/internal/retry"
	"iactu/internal/seo"
)

// PlaceholderURL is served when every lookup comes back empty.
const PlaceholderURL = "/images/default-ai.jpg"

var imageURLRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)(\?.*)?$`)

// Selectors tried in priority order when scraping the source page.
var scrapeSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`article img[src]`,
	`.article-image img`,
	`.post-image img`,
	`img[src*="featured"]`,
	`img[src*="hero"]`,
}

// Search terms per category for the stock-photo queries.
var categoryTerms = map[string]string{
	"Machine Learning": "machine learning",
	"Deep Learning":    "deep learning neural network",
	"NLP":              "natural language chatbot",
	"Computer Vision":  "computer vision",
	"Robotique":        "robot automation",
	"IA Générative":    "generative ai digital art",
	"Éthique IA":       "technology ethics",
	"Recherche":        "research laboratory",
	"Actualités":       "artificial intelligence technology",
}

type Service struct {
	client      *http.Client
	pexelsKey   string
	unsplashKey string
	retryCfg    retry.Config
}

func New(timeout time.Duration, pexelsKey, unsplashKey string, retryCfg retry.Config) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		client:      &http.Client{Timeout: timeout},
		pexelsKey:   pexelsKey,
		unsplashKey: unsplashKey,
		retryCfg:    retryCfg,
	}
}

// Find resolves an image descriptor for the article. It always
// returns something usable; lookups that fail are logged and skipped.
func (s *Service) Find(ctx context.Context, article *model.Article) model.FeaturedImage {
	if article.FeaturedImage != nil && article.FeaturedImage.URL != "" {
		return *article.FeaturedImage
	}

	if article.SourceURL != "" {
		if imgURL := s.scrapeFromSource(ctx, article.SourceURL); imgURL != "" {
			slog.Info("image scraped from source page", "slug", article.Slug)
			credit := article.SourceTitle
			if credit == "" {
				credit = "Source"
			}
			return model.FeaturedImage{URL: imgURL, Alt: article.Title, Credit: credit}
		}
	}

	query := SearchQuery(article)
	slog.Debug("searching stock image", "slug", article.Slug, "query", query)

	if img, ok := s.searchPexels(ctx, query); ok {
		return img
	}
	if img, ok := s.searchUnsplash(ctx, query); ok {
		return img
	}

	return model.FeaturedImage{
		URL:    PlaceholderURL,
		Alt:    article.Title,
		Credit: model.DefaultAuthor,
	}
}

// SearchQuery combines the category's search term with a significant
// word from the title.
func SearchQuery(article *model.Article) string {
	term, ok := categoryTerms[article.Category]
	if !ok {
		term = categoryTerms[model.CategoryFallback]
	}

	words := seo.ExtractKeywords(article.Title, 1)
	if len(words) > 0 {
		return term + " " + words[0]
	}
	return term
}

func (s *Service) scrapeFromSource(ctx context.Context, sourceURL string) string {
	var doc *goquery.Document
	err := retry.WithRetry(ctx, s.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP error: %d", resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return err
	})
	if err != nil {
		slog.Warn("source page scrape failed", "url", sourceURL, "error", err)
		return ""
	}

	for _, selector := range scrapeSelectors {
		element := doc.Find(selector).First()
		imgURL, ok := element.Attr("content")
		if !ok {
			imgURL, _ = element.Attr("src")
		}
		if imgURL == "" {
			continue
		}

		imgURL = absoluteURL(sourceURL, imgURL)
		if imageURLRe.MatchString(imgURL) || strings.Contains(imgURL, "image") {
			return imgURL
		}
	}
	return ""
}

func absoluteURL(base, ref string) string {
	if !strings.HasPrefix(ref, "/") {
		return ref
	}
	u, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return u.Scheme + "://" + u.Host + ref
}

type pexelsResponse struct {
	Photos []struct {
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large2x string `json:"large2x"`
		} `json:"src"`
	} `json:"photos"`
}

func (s *Service) searchPexels(ctx context.Context, query string) (model.FeaturedImage, bool) {
	if s.pexelsKey == "" {
		return model.FeaturedImage{}, false
	}

	var out pexelsResponse
	endpoint := "https://api.pexels.com/v1/search?query=" + url.QueryEscape(query) + "&per_page=5&orientation=landscape"
	if err := s.getJSON(ctx, endpoint, map[string]string{"Authorization": s.pexelsKey}, &out); err != nil {
		slog.Warn("pexels search failed", "error", err)
		return model.FeaturedImage{}, false
	}
	if len(out.Photos) == 0 {
		return model.FeaturedImage{}, false
	}

	photo := out.Photos[0]
	alt := photo.Alt
	if alt == "" {
		alt = query
	}
	return model.FeaturedImage{
		URL:    photo.Src.Large2x,
		Alt:    alt,
		Credit: fmt.Sprintf("Photo par %s sur Pexels", photo.Photographer),
	}, true
}

type unsplashResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Full string `json:"full"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

func (s *Service) searchUnsplash(ctx context.Context, query string) (model.FeaturedImage, bool) {
	if s.unsplashKey == "" {
		return model.FeaturedImage{}, false
	}

	var out unsplashResponse
	endpoint := "https://api.unsplash.com/search/photos?query=" + url.QueryEscape(query) + "&per_page=5&orientation=landscape&order_by=relevant"
	headers := map[string]string{"Authorization": "Client-ID " + s.unsplashKey}
	if err := s.getJSON(ctx, endpoint, headers, &out); err != nil {
		slog.Warn("unsplash search failed", "error", err)
		return model.FeaturedImage{}, false
	}
	if len(out.Results) == 0 {
		return model.FeaturedImage{}, false
	}

	photo := out.Results[0]
	alt := photo.AltDescription
	if alt == "" {
		alt = query
	}
	return model.FeaturedImage{
		URL:    photo.URLs.Full,
		Alt:    alt,
		Credit: fmt.Sprintf("Photo par %s sur Unsplash", photo.User.Name),
	}, true
}

func (s *Service) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	return retry.WithRetry(ctx, s.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP error: %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}
