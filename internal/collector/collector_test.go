package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"iactu/internal/model"
)

type fakeParser struct {
	feeds map[string]*gofeed.Feed
	errs  map[string]error
}

func (f *fakeParser) ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	return f.feeds[feedURL], nil
}

type fakeBooks struct {
	successes []primitive.ObjectID
	failures  []primitive.ObjectID
}

func (f *fakeBooks) RecordFetchSuccess(ctx context.Context, id primitive.ObjectID) error {
	f.successes = append(f.successes, id)
	return nil
}

func (f *fakeBooks) RecordFetchError(ctx context.Context, id primitive.ObjectID, fetchErr error) error {
	f.failures = append(f.failures, id)
	return nil
}

func feedSource(name, url string) model.Source {
	return model.Source{
		ID:       primitive.NewObjectID(),
		Name:     name,
		URL:      url,
		Type:     model.SourceTypeFeed,
		Category: "Actualités",
		Active:   true,
	}
}

func item(title string) *gofeed.Item {
	published := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return &gofeed.Item{
		Title:           title,
		Link:            "https://feed.example/" + title,
		Description:     "desc " + title,
		PublishedParsed: &published,
	}
}

func TestCollectAll_FailingSourceDoesNotAbortBatch(t *testing.T) {
	good := feedSource("good", "https://good.example/rss")
	bad := feedSource("bad", "https://bad.example/rss")

	parser := &fakeParser{
		feeds: map[string]*gofeed.Feed{
			good.URL: {Items: []*gofeed.Item{item("a"), item("b")}},
		},
		errs: map[string]error{bad.URL: errors.New("connection refused")},
	}
	books := &fakeBooks{}

	got := New(parser, books, 5).CollectAll(context.Background(), []model.Source{bad, good})

	assert.Len(t, got, 2)
	assert.Equal(t, []primitive.ObjectID{bad.ID}, books.failures)
	assert.Equal(t, []primitive.ObjectID{good.ID}, books.successes)
}

func TestCollectAll_SkipsNonFeedSources(t *testing.T) {
	scrape := feedSource("scraper", "https://scrape.example")
	scrape.Type = model.SourceTypeScrape

	parser := &fakeParser{feeds: map[string]*gofeed.Feed{}}
	books := &fakeBooks{}

	got := New(parser, books, 5).CollectAll(context.Background(), []model.Source{scrape})
	assert.Empty(t, got)
	assert.Empty(t, books.successes)
	assert.Empty(t, books.failures)
}

func TestCollectSource_CapsEntries(t *testing.T) {
	src := feedSource("busy", "https://busy.example/rss")
	parser := &fakeParser{feeds: map[string]*gofeed.Feed{
		src.URL: {Items: []*gofeed.Item{
			item("1"), item("2"), item("3"), item("4"), item("5"), item("6"), item("7"),
		}},
	}}

	got, err := New(parser, &fakeBooks{}, 5).CollectSource(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, "1", got[0].Title)
}

func TestCollectSource_FillsCandidateFields(t *testing.T) {
	src := feedSource("Example", "https://example.com/rss")
	it := item("Une annonce IA")
	parser := &fakeParser{feeds: map[string]*gofeed.Feed{src.URL: {Items: []*gofeed.Item{it}}}}

	got, err := New(parser, &fakeBooks{}, 5).CollectSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "Une annonce IA", c.Title)
	assert.Equal(t, it.Link, c.Link)
	assert.Equal(t, "desc Une annonce IA", c.Description)
	assert.Equal(t, *it.PublishedParsed, c.PublishedAt)
	assert.Equal(t, "Actualités", c.Category)
	assert.Equal(t, "Example", c.SourceName)
}

func TestCollectSource_MissingDateFallsBackToNow(t *testing.T) {
	src := feedSource("nodate", "https://nodate.example/rss")
	it := item("sans date")
	it.PublishedParsed = nil
	parser := &fakeParser{feeds: map[string]*gofeed.Feed{src.URL: {Items: []*gofeed.Item{it}}}}

	before := time.Now()
	got, err := New(parser, &fakeBooks{}, 5).CollectSource(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, got[0].PublishedAt.Before(before))
}

func TestExtractImage_PriorityChain(t *testing.T) {
	withItemImage := item("a")
	withItemImage.Image = &gofeed.Image{URL: "https://img.example/item.jpg"}
	withItemImage.Enclosures = []*gofeed.Enclosure{{URL: "https://img.example/enclosure.jpg"}}
	assert.Equal(t, "https://img.example/item.jpg", extractImage(withItemImage))

	withMedia := item("b")
	withMedia.Extensions = ext.Extensions{
		"media": {"content": []ext.Extension{{Attrs: map[string]string{"url": "https://img.example/media.jpg"}}}},
	}
	assert.Equal(t, "https://img.example/media.jpg", extractImage(withMedia))

	withEnclosure := item("c")
	withEnclosure.Enclosures = []*gofeed.Enclosure{{URL: "https://img.example/enclosure.jpg"}}
	assert.Equal(t, "https://img.example/enclosure.jpg", extractImage(withEnclosure))

	withEmbedded := item("d")
	withEmbedded.Content = `<p>texte</p><img src="https://img.example/embedded.jpg">`
	assert.Equal(t, "https://img.example/embedded.jpg", extractImage(withEmbedded))

	assert.Equal(t, "", extractImage(item("e")))
}
