package pipeline

import "github.com/locvowork/sheetpreview/pkg/sheetcodec"

// ColumnDescriptor labels one column of the data grid.
type ColumnDescriptor struct {
	Name string `json:"name"`
	Key  int    `json:"key"`
}

// DeriveColumns returns one descriptor per column from A up to the last
// column of ref, so a range starting at C still yields A and B. An empty ref
// yields no columns.
func DeriveColumns(ref string) ([]ColumnDescriptor, error) {
	cols := []ColumnDescriptor{}
	if ref == "" {
		return cols, nil
	}
	rng, err := sheetcodec.DecodeRange(ref)
	if err != nil {
		return nil, err
	}

	for i := 0; i <= rng.End.Col; i++ {
		cols = append(cols, ColumnDescriptor{Name: sheetcodec.EncodeColumn(i), Key: i})
	}
	return cols, nil
}
