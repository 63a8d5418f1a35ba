package content

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/store"
)

// techStackFile mirrors techstack.toml:
//
//	[[category]]
//	name = "Backend"
//
//	  [[category.item]]
//	  name = "Go"
//	  icon = "go"
//	  url = "https://go.dev"
type techStackFile struct {
	Categories []techCategory `toml:"category"`
}

type techCategory struct {
	Name  string     `toml:"name"`
	Slug  string     `toml:"slug"`
	Items []techItem `toml:"item"`
}

type techItem struct {
	Name string `toml:"name"`
	Icon string `toml:"icon"`
	URL  string `toml:"url"`
}

func (idx *Indexer) indexTechStacks(absPath string) error {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", absPath, err)
	}

	var file techStackFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", absPath, err)
	}

	cats := make([]store.TechCategory, 0, len(file.Categories))
	for _, c := range file.Categories {
		slug := c.Slug
		if slug == "" {
			slug = markdown.Slugify(c.Name)
		}
		cat := store.TechCategory{Slug: slug, Name: c.Name}
		for _, item := range c.Items {
			cat.Items = append(cat.Items, store.TechItem{Name: item.Name, Icon: item.Icon, URL: item.URL})
		}
		cats = append(cats, cat)
	}

	return idx.db.ReplaceTechStacks(cats)
}
