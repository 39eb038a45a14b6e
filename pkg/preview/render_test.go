package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSnippet(t *testing.T) {
	data := sheetcodec.RowData{
		{int64(1), "Ancient DNA", "古代DNA", "s41586-019-1", "A short standfirst.", "https://www.nature.com/articles/s41586-019-1"},
	}

	var sb strings.Builder
	require.NoError(t, RenderSnippet(&sb, data, DefaultLayout()))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, `<div class="slide-bar-box">`))
	assert.Equal(t, 1, strings.Count(out, `<div class="media">`))
	assert.Contains(t, out, `<img src="/static/images/article-thumbnails/s41586-019-1.jpg" alt="" class="media-object">`)
	assert.Contains(t, out, `<h3 class="title"><span>1: </span><a href="https://www.nature.com/articles/s41586-019-1" class="eng" rel="external" title="英語の原文を読む：Ancient DNA">古代DNA</a></h3>`)
	assert.Contains(t, out, `<p class="eng-title">Ancient DNA</p>`)
	assert.Contains(t, out, `<p class="doi">doi: 10.1038/s41586-019-1</p>`)
	assert.Contains(t, out, `<p class="standfirst">A short standfirst.</p>`)
	assert.True(t, strings.HasSuffix(out, "</div>\n"))
}

func TestRenderSnippet_MissingCellsAndEscaping(t *testing.T) {
	data := sheetcodec.RowData{
		{int64(2), "<b>Cats & Dogs</b>"},
		{},
		{nil, nil, nil, nil, nil, "javascript:alert(1)"},
	}

	var sb strings.Builder
	require.NoError(t, RenderSnippet(&sb, data, DefaultLayout()))
	out := sb.String()

	assert.Equal(t, 3, strings.Count(out, `<div class="media">`))
	assert.Contains(t, out, `<p class="eng-title">&lt;b&gt;Cats &amp; Dogs&lt;/b&gt;</p>`)
	assert.NotContains(t, out, "<b>Cats")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `<p class="doi">doi: 10.1038/</p>`)
}

func TestRenderSnippet_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RenderSnippet(&sb, sheetcodec.RowData{}, DefaultLayout()))
	assert.Equal(t, "<div class=\"slide-bar-box\">\n</div>\n", sb.String())
}

func TestRenderSnippet_CustomLayout(t *testing.T) {
	layout, err := ParseLayout([]byte("number: 1\nenglish_title: 0\nwrapper_class: list\n"))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, RenderSnippet(&sb, sheetcodec.RowData{{"Title", int64(7)}}, layout))
	out := sb.String()

	assert.Contains(t, out, `<div class="list">`)
	assert.Contains(t, out, `<span>7: </span>`)
	assert.Contains(t, out, `<p class="eng-title">Title</p>`)
}

func TestRenderTable(t *testing.T) {
	data := sheetcodec.RowData{{"a", "b"}, {int64(1), 2.5}, {true}}
	cols := []pipeline.ColumnDescriptor{{Name: "A", Key: 0}, {Name: "B", Key: 1}}

	var sb strings.Builder
	require.NoError(t, RenderTable(&sb, data, cols))
	out := sb.String()

	assert.Contains(t, out, "<tr><th>A</th><th>B</th></tr>")
	assert.Contains(t, out, "<tr><td>a</td><td>b</td></tr>")
	assert.Contains(t, out, "<tr><td>1</td><td>2.5</td></tr>")
	assert.Contains(t, out, "<tr><td>TRUE</td><td></td></tr>")
}

func TestLoadLayout(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		layout, err := LoadLayout("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLayout(), layout)
	})

	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.yaml")
		require.NoError(t, os.WriteFile(path, []byte("doi: 4\nstandfirst: 3\ndoi_prefix: \"10.1126/\"\n"), 0o644))

		layout, err := LoadLayout(path)
		require.NoError(t, err)
		assert.Equal(t, 4, layout.DOI)
		assert.Equal(t, 3, layout.Standfirst)
		assert.Equal(t, "10.1126/", layout.DOIPrefix)
		assert.Equal(t, "slide-bar-box", layout.WrapperClass)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseLayout([]byte("number: -1\n"))
		assert.Error(t, err)

		_, err = ParseLayout([]byte("number: [\n"))
		assert.Error(t, err)

		_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
