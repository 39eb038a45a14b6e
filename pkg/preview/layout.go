// Package preview renders row data as HTML: a "media" snippet for article
// listings and a plain table.
package preview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Layout maps row positions to the fields of a media snippet and carries
// the fixed parts of the markup.
type Layout struct {
	Number       int `yaml:"number"`
	EnglishTitle int `yaml:"english_title"`
	Title        int `yaml:"title"`
	DOI          int `yaml:"doi"`
	Standfirst   int `yaml:"standfirst"`
	Href         int `yaml:"href"`

	WrapperClass    string `yaml:"wrapper_class"`
	ThumbnailPath   string `yaml:"thumbnail_path"`   // prefix of <doi>.jpg
	DOIPrefix       string `yaml:"doi_prefix"`       // printed before the DOI suffix
	LinkTitlePrefix string `yaml:"link_title_prefix"` // title attribute before the English title
}

// DefaultLayout reads columns A to F as number, English title, translated
// title, DOI suffix, standfirst and link.
func DefaultLayout() Layout {
	return Layout{
		Number:          0,
		EnglishTitle:    1,
		Title:           2,
		DOI:             3,
		Standfirst:      4,
		Href:            5,
		WrapperClass:    "slide-bar-box",
		ThumbnailPath:   "/static/images/article-thumbnails/",
		DOIPrefix:       "10.1038/",
		LinkTitlePrefix: "英語の原文を読む：",
	}
}

// ParseLayout decodes a YAML layout. Keys left out keep their defaults.
func ParseLayout(yamlConfig []byte) (Layout, error) {
	layout := DefaultLayout()
	if err := yaml.Unmarshal(yamlConfig, &layout); err != nil {
		return Layout{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := layout.validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// LoadLayout reads a YAML layout from path. An empty path yields the
// default layout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(raw)
}

func (l Layout) validate() error {
	for name, idx := range map[string]int{
		"number":        l.Number,
		"english_title": l.EnglishTitle,
		"title":         l.Title,
		"doi":           l.DOI,
		"standfirst":    l.Standfirst,
		"href":          l.Href,
	} {
		if idx < 0 {
			return fmt.Errorf("layout %s: negative column index %d", name, idx)
		}
	}
	return nil
}
