package sheetcodec

// SheetToRows converts a sheet into row data, treating every row of the
// extent as data (no header row is consumed). Rows start at the extent's
// top-left cell. Blank rows inside the extent are kept as empty rows, gaps
// inside a row are nil and trailing empty cells are dropped.
func SheetToRows(sh *Sheet) RowData {
	rows := RowData{}
	if sh == nil || sh.Ref == "" {
		return rows
	}
	rng, err := DecodeRange(sh.Ref)
	if err != nil {
		return rows
	}

	for r := rng.Start.Row; r <= rng.End.Row; r++ {
		// rows are sized to their last value, not to the declared width
		last := rng.Start.Col - 1
		if r < len(sh.grid) {
			for c := min(rng.End.Col, len(sh.grid[r])-1); c >= rng.Start.Col; c-- {
				if sh.grid[r][c] != nil {
					last = c
					break
				}
			}
		}

		row := make([]interface{}, last-rng.Start.Col+1)
		for c := range row {
			row[c] = sh.Cell(r, rng.Start.Col+c)
		}
		rows = append(rows, row)
	}
	return rows
}

// RowsToSheet builds a sheet from row data anchored at A1. The extent
// covers every position present in data, nil values included; it is empty
// when data holds no cells at all.
func RowsToSheet(data RowData) *Sheet {
	sh := &Sheet{}
	end := CellAddress{Row: -1, Col: -1}
	for r, row := range data {
		if len(row) == 0 {
			continue
		}
		end.Row = r
		end.Col = max(end.Col, len(row)-1)
		for c, v := range row {
			if v != nil {
				sh.set(r, c, v)
			}
		}
	}
	if end.Row >= 0 {
		sh.Ref = Range{End: end}.String()
	}
	return sh
}
