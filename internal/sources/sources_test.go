package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iactu/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaults, got)
	assert.Len(t, got, 8)
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Flux Test
    url: https://test.example/rss
    type: feed
    category: Recherche
  - name: Minimal
    url: https://minimal.example/rss
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Flux Test", got[0].Name)
	assert.Equal(t, "Recherche", got[0].Category)
	assert.Equal(t, model.SourceTypeFeed, got[1].Type)
	assert.Equal(t, model.CategoryFallback, got[1].Category)
}

func TestLoad_RejectsEntryWithoutURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: SansURL\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "missing name or url")
}

type recordingUpserter struct {
	names []string
}

func (r *recordingUpserter) UpsertSource(ctx context.Context, source model.Source) error {
	r.names = append(r.names, source.Name)
	return nil
}

func TestSeed_UpsertsEveryDefault(t *testing.T) {
	up := &recordingUpserter{}
	err := Seed(context.Background(), up, filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Len(t, up.names, len(defaults))
	assert.Contains(t, up.names, "OpenAI Blog")
}
