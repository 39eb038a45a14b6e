package preview

import (
	"html/template"
	"io"

	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
)

// Kind selects a renderer.
type Kind string

const (
	KindSnippet Kind = "snippet"
	KindTable   Kind = "table"
)

var snippetTmpl = template.Must(template.New("snippet").Parse(`<div class="{{.Layout.WrapperClass}}">
{{- range .Items}}
<div class="media">
  <div class="media-left">
    <img src="{{$.Layout.ThumbnailPath}}{{.DOI}}.jpg" alt="" class="media-object">
  </div>

  <div class="media-body">
    <h3 class="title"><span>{{.Number}}: </span><a href="{{.Href}}" class="eng" rel="external" title="{{$.Layout.LinkTitlePrefix}}{{.EnglishTitle}}">{{.Title}}</a></h3>
    <p class="eng-title">{{.EnglishTitle}}</p>
    <p class="doi">doi: {{$.Layout.DOIPrefix}}{{.DOI}}</p>
    <p class="standfirst">{{.Standfirst}}</p>
  </div>
</div>
{{end}}
</div>
`))

var tableTmpl = template.Must(template.New("table").Parse(`<table class="table table-striped">
  <thead>
    <tr>{{range .Cols}}<th>{{.Name}}</th>{{end}}</tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
  </tbody>
</table>
`))

type snippetItem struct {
	Number       string
	EnglishTitle string
	Title        string
	DOI          string
	Standfirst   string
	Href         string
}

// RenderSnippet writes one media block per row. Cells outside a row render
// empty and every value is HTML escaped.
func RenderSnippet(w io.Writer, data sheetcodec.RowData, layout Layout) error {
	items := make([]snippetItem, 0, len(data))
	for _, row := range data {
		items = append(items, snippetItem{
			Number:       cellText(row, layout.Number),
			EnglishTitle: cellText(row, layout.EnglishTitle),
			Title:        cellText(row, layout.Title),
			DOI:          cellText(row, layout.DOI),
			Standfirst:   cellText(row, layout.Standfirst),
			Href:         cellText(row, layout.Href),
		})
	}
	return snippetTmpl.Execute(w, struct {
		Layout Layout
		Items  []snippetItem
	}{Layout: layout, Items: items})
}

// RenderTable writes data as an HTML table with one column per descriptor,
// looked up by descriptor key.
func RenderTable(w io.Writer, data sheetcodec.RowData, cols []pipeline.ColumnDescriptor) error {
	rows := make([][]string, 0, len(data))
	for _, row := range data {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cellText(row, c.Key)
		}
		rows = append(rows, cells)
	}
	return tableTmpl.Execute(w, struct {
		Cols []pipeline.ColumnDescriptor
		Rows [][]string
	}{Cols: cols, Rows: rows})
}

func cellText(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return sheetcodec.FormatValue(row[idx])
}
