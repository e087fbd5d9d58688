// Package social cross-posts published articles to the configured
// platforms. Posting is best-effort: an unconfigured platform is
// skipped, a failed attempt is recorded as failed and never retried.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"iactu/internal/metrics"
	"iactu/internal/model"
	"iactu/internal/ratelimit"
	"iactu/internal/retry"
)

// Credentials hold per-platform API access. An empty credential
// disables its platform.
type Credentials struct {
	FacebookAccessToken string
	FacebookPageID      string
	TwitterBearerToken  string
	LinkedInAccessToken string
}

// Recorder is the slice of the store the publisher needs.
type Recorder interface {
	InsertSocialPost(ctx context.Context, post *model.SocialPost) error
	MarkShared(ctx context.Context, id primitive.ObjectID, platform string) error
}

// Result identifies a successfully created platform post.
type Result struct {
	PostID  string
	PostURL string
}

type Publisher struct {
	client   *http.Client
	creds    Credentials
	siteURL  string
	recorder Recorder
	limiter  ratelimit.Limiter
	retryCfg retry.Config
}

func NewPublisher(creds Credentials, siteURL string, recorder Recorder, limiter ratelimit.Limiter, timeout time.Duration, retryCfg retry.Config) *Publisher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}
	return &Publisher{
		client:   &http.Client{Timeout: timeout},
		creds:    creds,
		siteURL:  siteURL,
		recorder: recorder,
		limiter:  limiter,
		retryCfg: retryCfg,
	}
}

// Publish posts one article to one platform. Returns (nil, nil) when
// the platform is not configured. A platform API failure is recorded
// as a failed attempt and reported back; the caller treats it as
// non-fatal for the batch.
func (p *Publisher) Publish(ctx context.Context, article *model.Article, platform string) (*Result, error) {
	if !p.configured(platform) {
		slog.Info("platform not configured, skipping", "platform", platform)
		return nil, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	content := PostContent(article, platform, p.siteURL)

	var result *Result
	var postErr error
	switch platform {
	case model.PlatformFacebook:
		result, postErr = p.postToFacebook(ctx, article, content)
	case model.PlatformTwitter:
		result, postErr = p.postToTwitter(ctx, content)
	case model.PlatformLinkedIn:
		result, postErr = p.postToLinkedIn(ctx, article, content)
	default:
		return nil, fmt.Errorf("unknown platform %q", platform)
	}

	post := &model.SocialPost{
		ArticleID: article.ID,
		Platform:  platform,
		Content:   content,
	}

	if postErr != nil {
		slog.Error("social publish failed", "platform", platform, "slug", article.Slug, "error", postErr)
		metrics.Global.IncrementSocialPostsFailed()
		post.Status = model.PostStatusFailed
		post.Error = &model.SourceError{Message: postErr.Error(), Timestamp: time.Now()}
		if err := p.recorder.InsertSocialPost(ctx, post); err != nil {
			return nil, err
		}
		return nil, postErr
	}

	post.Status = model.PostStatusPublished
	post.PostID = result.PostID
	post.PostURL = result.PostURL
	post.PublishedAt = time.Now()
	if err := p.recorder.InsertSocialPost(ctx, post); err != nil {
		return nil, err
	}
	if err := p.recorder.MarkShared(ctx, article.ID, platform); err != nil {
		return nil, err
	}

	metrics.Global.IncrementSocialPostsSent()
	slog.Info("published to platform", "platform", platform, "slug", article.Slug, "postUrl", result.PostURL)
	return result, nil
}

func (p *Publisher) configured(platform string) bool {
	switch platform {
	case model.PlatformFacebook:
		return p.creds.FacebookAccessToken != "" && p.creds.FacebookPageID != ""
	case model.PlatformTwitter:
		return p.creds.TwitterBearerToken != ""
	case model.PlatformLinkedIn:
		return p.creds.LinkedInAccessToken != ""
	}
	return false
}

func (p *Publisher) postToFacebook(ctx context.Context, article *model.Article, content string) (*Result, error) {
	endpoint := fmt.Sprintf("https://graph.facebook.com/v18.0/%s/feed?access_token=%s",
		p.creds.FacebookPageID, p.creds.FacebookAccessToken)

	payload := map[string]any{
		"message": content,
		"link":    fmt.Sprintf("%s/article/%s", p.siteURL, article.Slug),
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := p.postJSON(ctx, endpoint, nil, payload, &out); err != nil {
		return nil, err
	}
	return &Result{
		PostID:  out.ID,
		PostURL: "https://facebook.com/" + out.ID,
	}, nil
}

func (p *Publisher) postToTwitter(ctx context.Context, content string) (*Result, error) {
	headers := map[string]string{"Authorization": "Bearer " + p.creds.TwitterBearerToken}
	payload := map[string]any{"text": content}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := p.postJSON(ctx, "https://api.twitter.com/2/tweets", headers, payload, &out); err != nil {
		return nil, err
	}
	return &Result{
		PostID:  out.Data.ID,
		PostURL: "https://twitter.com/user/status/" + out.Data.ID,
	}, nil
}

func (p *Publisher) postToLinkedIn(ctx context.Context, article *model.Article, content string) (*Result, error) {
	headers := map[string]string{"Authorization": "Bearer " + p.creds.LinkedInAccessToken}

	me := struct {
		ID string `json:"id"`
	}{}
	if err := p.getJSON(ctx, "https://api.linkedin.com/v2/me", headers, &me); err != nil {
		return nil, fmt.Errorf("linkedin profile: %w", err)
	}

	articleURL := fmt.Sprintf("%s/article/%s", p.siteURL, article.Slug)
	payload := map[string]any{
		"author":         "urn:li:person:" + me.ID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": content},
				"shareMediaCategory": "ARTICLE",
				"media": []map[string]any{{
					"status":      "READY",
					"originalUrl": articleURL,
					"title":       map[string]any{"text": article.Title},
					"description": map[string]any{"text": article.Excerpt},
				}},
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := p.postJSON(ctx, "https://api.linkedin.com/v2/ugcPosts", headers, payload, &out); err != nil {
		return nil, err
	}
	return &Result{
		PostID:  out.ID,
		PostURL: "https://www.linkedin.com/feed/update/" + out.ID,
	}, nil
}

func (p *Publisher) postJSON(ctx context.Context, endpoint string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return retry.WithRetry(ctx, p.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("platform API error: status %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}

func (p *Publisher) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	return retry.WithRetry(ctx, p.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("platform API error: status %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}
