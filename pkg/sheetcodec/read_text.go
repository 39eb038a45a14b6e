package sheetcodec

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const defaultSheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText normalises text content to UTF-8. UTF-16 needs a byte order
// mark; bytes that are not valid UTF-8 are read as Windows-1252, the usual
// encoding of spreadsheet CSV exports.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return string(data[len(utf8BOM):]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf8.Valid(data):
		return string(data), nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// sniffDelimiter picks tab, semicolon or comma from the first non-blank line.
func sniffDelimiter(text string) rune {
	line := text
	for _, l := range strings.SplitN(text, "\n", 32) {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	tabs := strings.Count(line, "\t")
	semis := strings.Count(line, ";")
	commas := strings.Count(line, ",")
	switch {
	case tabs > 0 && tabs >= commas && tabs >= semis:
		return '\t'
	case semis > commas:
		return ';'
	default:
		return ','
	}
}

func readDelimited(data []byte) (*Workbook, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	delim := sniffDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	sh := &Sheet{}
	// encoding/csv skips blank lines; line numbers put them back as empty rows.
	row, lastLine := -1, 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)
		row += line - lastLine
		endLine, _ := r.FieldPos(len(record) - 1)
		lastLine = endLine + strings.Count(record[len(record)-1], "\n")

		for col, field := range record {
			if v := coerceText(field); v != nil {
				sh.set(row, col, v)
			}
		}
	}
	sh.anchorRef()

	wb := NewWorkbook()
	wb.Format = FormatCSV
	if delim == '\t' {
		wb.Format = FormatTXT
	}
	if err := AppendSheet(wb, sh, defaultSheetName); err != nil {
		return nil, err
	}
	return wb, nil
}
