package sheetcodec

import (
	"path"
	"path/filepath"
	"strings"
)

// AcceptedExtensions lists the extensions offered by file pickers. The list
// is advisory: Read sniffs the content and never looks at the extension.
var AcceptedExtensions = []string{
	"xlsx", "xlsb", "xlsm", "xls", "xml", "csv", "txt", "ods", "fods", "uos",
	"sylk", "dif", "dbf", "prn", "qpw", "123", "wb*", "wq*", "html", "htm",
}

// AcceptAttribute renders AcceptedExtensions for an <input accept="...">.
func AcceptAttribute() string {
	exts := make([]string, len(AcceptedExtensions))
	for i, ext := range AcceptedExtensions {
		exts[i] = "." + ext
	}
	return strings.Join(exts, ",")
}

// IsAccepted reports whether name carries one of AcceptedExtensions.
func IsAccepted(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, pattern := range AcceptedExtensions {
		if ok, _ := path.Match(pattern, ext); ok {
			return true
		}
	}
	return false
}
