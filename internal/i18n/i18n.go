// Package i18n holds the page's translation tables.
//
// Tables are keyed by language and then by message key. A key missing from
// a language falls back to the fallback language, then to the key itself, so
// a partially translated table still renders.
package i18n

import (
	_ "embed"
	"fmt"

	"farm-advisor/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed translations.yaml
var defaultTranslations []byte

type Catalog struct {
	tables   map[models.Language]map[string]string
	fallback models.Language
}

// Load parses the embedded translation tables.
func Load() (*Catalog, error) {
	return Parse(defaultTranslations, models.LangEN)
}

func Parse(data []byte, fallback models.Language) (*Catalog, error) {
	var tables map[models.Language]map[string]string
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}

	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no table", fallback)
	}

	return &Catalog{tables: tables, fallback: fallback}, nil
}

func (c *Catalog) T(lang models.Language, key string) string {
	if msg, ok := c.tables[lang][key]; ok {
		return msg
	}
	if msg, ok := c.tables[c.fallback][key]; ok {
		return msg
	}
	return key
}

// Table returns every key of the fallback table translated into lang.
func (c *Catalog) Table(lang models.Language) map[string]string {
	out := make(map[string]string, len(c.tables[c.fallback]))
	for key := range c.tables[c.fallback] {
		out[key] = c.T(lang, key)
	}
	return out
}

func (c *Catalog) Languages() []models.Language {
	langs := make([]models.Language, 0, len(c.tables))
	for lang := range c.tables {
		langs = append(langs, lang)
	}
	return langs
}
