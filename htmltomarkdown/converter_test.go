package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements docsearch.Converter at compile time.
var _ docsearch.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts description paragraph with inline code", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Whether to show the <code>legend</code> component.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Whether to show the `legend` component.", md)
	})

	t.Run("converts option lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Options:</p><ul><li><code>'horizontal'</code></li><li><code>'vertical'</code></li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- `'horizontal'`")
		assert.Contains(t, md, "- `'vertical'`")
	})

	t.Run("converts code samples", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<pre><code class="lang-js">color: ['#c23531', '#2f4554']</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```")
		assert.Contains(t, md, "color: ['#c23531', '#2f4554']")
	})

	t.Run("resolves relative links with domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://docs.example.com"))
		md, err := conv.Convert(`<p>See <a href="/en/option.html#legend">legend</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[legend](https://docs.example.com/en/option.html#legend)")
	})

	t.Run("returns empty string for blank description", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
