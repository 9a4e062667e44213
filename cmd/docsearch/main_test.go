package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOutline = `{"children":[
	{"prop":"title","children":[{"prop":"text","type":"string"},{"prop":"subtext","type":"string"}]},
	{"prop":"color","type":"Array"}
]}`

// siteFetcher serves documents of a site under /docs from memory.
func siteFetcher(docs map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, error) {
			doc, ok := docs[url]
			if !ok {
				return nil, docsearch.Errorf(docsearch.EFETCH, "HTTP 404 for %s", url)
			}
			return []byte(doc), nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestMain_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docsearch")
	assert.Contains(t, stdout.String(), "search")
	assert.Contains(t, stdout.String(), "serve")
}

func TestMain_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("preloads outline before running command", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{
			"/docs/option-outline.json": testOutline,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--base-url", "/docs/", "find", "title"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "title\ntitle.text\ntitle.subtext\n", stdout.String())
	})

	t.Run("searches every partition", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{
			"/docs/option-outline.json": testOutline,
			"/docs/option.json":         `{"color":"<p>Palette of series colors</p>"}`,
			"/docs/option.title.json":   `{"text":"<p>Main title text</p>","subtext":"<p>Subtitle</p>"}`,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--base-url", "/docs", "search", "--sort", "title"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "title.subtext\n    Subtitle\n")
		assert.Contains(t, stdout.String(), "title.text\n    Main title text\n")
		assert.Contains(t, stdout.String(), "2 matches in 2 partitions")
	})

	t.Run("uses custom root name", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{
			"/docs/theme-outline.json": testOutline,
			"/docs/theme.json":         `{"color":"<b>Palette</b>"}`,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--base-url", "/docs", "--root", "theme", "desc", "color"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "Palette\n", stdout.String())
	})

	t.Run("logs fetches when verbose", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{
			"/docs/option-outline.json": testOutline,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--base-url", "/docs", "--verbose", "find", "color"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
		assert.Contains(t, stderr.String(), "url=/docs/option-outline.json")
		assert.Equal(t, "color\n", stdout.String())
	})

	t.Run("reports outline failure", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--base-url", "/docs", "find", "title"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, docsearch.EFETCH, docsearch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "/docs/option-outline.json")
		assert.Empty(t, stdout.String())
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = siteFetcher(map[string]string{})

		err := m.Run(context.Background(), []string{"find", "title"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}
