package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsearch"
	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOutline(t *testing.T) *docsearch.Outline {
	t.Helper()
	o, err := docsearch.ParseOutline([]byte(testOutline))
	require.NoError(t, err)
	return o
}

func newDeps(site docsearch.SiteService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Site:   site,
	}, stdout, stderr
}

func TestOutlineCmd_Run(t *testing.T) {
	t.Parallel()

	outline := parseOutline(t)
	site := &mock.SiteService{
		OutlineFn: func(ctx context.Context) (*docsearch.Outline, error) { return outline, nil },
	}

	t.Run("prints whole tree", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.OutlineCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "title (undefined)\n  text (string)\n  subtext (string)\ncolor (Array)\n", stdout.String())
	})

	t.Run("limits depth", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.OutlineCmd{Depth: 1}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "title (undefined)\ncolor (Array)\n", stdout.String())
	})

	t.Run("prints subtree", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.OutlineCmd{Path: "title"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "title (undefined)\n  text (string)\n  subtext (string)\n", stdout.String())
	})

	t.Run("reports unknown path", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(site)
		err := (&main.OutlineCmd{Path: "legend"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
		assert.Contains(t, stderr.String(), `"legend"`)
	})
}

func TestFindCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints matching paths", func(t *testing.T) {
		t.Parallel()

		outline := parseOutline(t)
		deps, stdout, _ := newDeps(&mock.SiteService{
			SearchOutlineFn: func(ctx context.Context, query string, limit int) ([]*docsearch.OutlineNode, error) {
				assert.Equal(t, 2, limit)
				return outline.Search(query, limit), nil
			},
		})

		err := (&main.FindCmd{Query: "text", Limit: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "title.text\ntitle.subtext\n", stdout.String())
	})

	t.Run("shows message when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.SiteService{
			SearchOutlineFn: func(ctx context.Context, query string, limit int) ([]*docsearch.OutlineNode, error) {
				return nil, nil
			},
		})

		err := (&main.FindCmd{Query: "nope"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No matching paths")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	results := func(ctx context.Context, query string, onMatch docsearch.MatchFunc) error {
		onMatch("option.title", []*docsearch.IndexRecord{{Path: "title.text", Text: "Main   title\ntext"}})
		onMatch("option", []*docsearch.IndexRecord{{Path: "color", Text: "Palette"}})
		onMatch("option.legend", []*docsearch.IndexRecord{})
		return nil
	}

	t.Run("prints results as partitions report", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.SiteService{SearchAllFn: results})
		err := (&main.SearchCmd{Query: "a"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "title.text\n    Main title text\ncolor\n    Palette\n\n2 matches in 3 partitions\n", stdout.String())
	})

	t.Run("sorts results by path", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.SiteService{SearchAllFn: results})
		err := (&main.SearchCmd{Query: "a", Sort: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "color\n    Palette\ntitle.text\n    Main title text\n\n2 matches in 3 partitions\n", stdout.String())
	})

	t.Run("reports search error", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.SiteService{
			SearchAllFn: func(ctx context.Context, query string, onMatch docsearch.MatchFunc) error {
				return docsearch.Errorf(docsearch.ENOTLOADED, "outline not loaded")
			},
		})
		err := (&main.SearchCmd{Query: "a"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: outline not loaded\n", stderr.String())
	})
}

func TestDescCmd_Run(t *testing.T) {
	t.Parallel()

	outline := parseOutline(t)
	site := &mock.SiteService{
		PageOutlineFn: func(ctx context.Context, path string) (*docsearch.OutlineNode, error) {
			return outline.PageOutline(path), nil
		},
		PageDescriptionsFn: func(ctx context.Context, path string) (docsearch.Descriptions, error) {
			if docsearch.PagePath(path) == "title" {
				return docsearch.Descriptions{
					{Path: "text", HTML: "<p>Main title</p>"},
					{Path: "subtext", HTML: "<p>Subtitle</p>"},
				}, nil
			}
			return docsearch.Descriptions{{Path: "color", HTML: "<b>Palette</b>"}}, nil
		},
	}

	t.Run("prints one description as text", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.DescCmd{Path: "title.subtext"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Subtitle\n", stdout.String())
	})

	t.Run("prints root-level description", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.DescCmd{Path: "color"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Palette\n", stdout.String())
	})

	t.Run("prints whole page for page path", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		err := (&main.DescCmd{Path: "title"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "## title.text\n\nMain title\n\n## title.subtext\n\nSubtitle\n", stdout.String())
	})

	t.Run("renders markdown through converter", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(site)
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<b>Palette</b>", html)
				return "**Palette**", nil
			},
		}
		err := (&main.DescCmd{Path: "color", Markdown: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "**Palette**\n", stdout.String())
	})

	t.Run("reports converter failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(site)
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}
		err := (&main.DescCmd{Path: "color", Markdown: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports missing description", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(site)
		err := (&main.DescCmd{Path: "legend"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
		assert.Contains(t, stderr.String(), `"legend"`)
	})
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is done", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		deps, stdout, _ := newDeps(&mock.SiteService{})
		deps.Ctx = ctx
		deps.Logger = slog.New(slog.DiscardHandler)

		err := (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Listening on 127.0.0.1:0")
	})

	t.Run("reports listen failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.SiteService{})
		deps.Logger = slog.New(slog.DiscardHandler)

		err := (&main.ServeCmd{Addr: "127.0.0.1:-1"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
