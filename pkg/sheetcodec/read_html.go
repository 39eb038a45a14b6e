package sheetcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Span limits browsers apply to table cells.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// readHTML turns every <table> of the document into a sheet, in document
// order. Nested tables become sheets of their own.
func readHTML(data []byte) (*Workbook, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var tables []*html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	wb := NewWorkbook()
	wb.Format = FormatHTML
	for i, table := range tables {
		sh, err := readHTMLTable(table)
		if err != nil {
			return nil, err
		}
		if err := AppendSheet(wb, sh, fmt.Sprintf("Sheet%d", i+1)); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func readHTMLTable(table *html.Node) (*Sheet, error) {
	sh := &Sheet{}
	// carry[c] counts the rows, the current one included, that column c is
	// still held by a rowspan from an earlier row.
	var carry []int

	row := 0
	for _, tr := range tableRows(table) {
		if row >= excelize.TotalRows {
			return nil, fmt.Errorf("%w: table longer than %d rows", ErrInvalidRange, excelize.TotalRows)
		}
		col := 0
		for cell := tr.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != html.ElementNode || (cell.DataAtom != atom.Td && cell.DataAtom != atom.Th) {
				continue
			}
			for col < len(carry) && carry[col] > 0 {
				col++
			}
			if col >= excelize.MaxColumns {
				return nil, fmt.Errorf("%w: table wider than %d columns", ErrInvalidRange, excelize.MaxColumns)
			}
			if v := coerceText(nodeText(cell)); v != nil {
				sh.set(row, col, v)
			}

			colspan := spanAttr(cell, "colspan", maxColspan)
			if rowspan := spanAttr(cell, "rowspan", maxRowspan); rowspan > 1 {
				for len(carry) < col+colspan {
					carry = append(carry, 0)
				}
				for c := col; c < col+colspan; c++ {
					carry[c] = max(carry[c], rowspan)
				}
			}
			col += colspan
		}
		for c := range carry {
			if carry[c] > 0 {
				carry[c]--
			}
		}
		row++
	}
	sh.anchorRef()
	return sh, nil
}

// tableRows returns the <tr> elements owned by table, skipping rows of
// nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				continue
			case atom.Tr:
				rows = append(rows, c)
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	lines := strings.Split(sb.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// spanAttr reads a colspan or rowspan attribute, clamped to [1, limit].
func spanAttr(n *html.Node, key string, limit int) int {
	for _, a := range n.Attr {
		if a.Key != key {
			continue
		}
		if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 0 {
			return min(v, limit)
		}
	}
	return 1
}
