// Package rules holds the keyword and reply-template tables used by the
// categorizer and responder. A Rules value is built once and never mutated.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// CategoryRule maps a category to the keywords that select it.
type CategoryRule struct {
	Category domain.Category
	Keywords []string
}

// Rules is the immutable rule set.
type Rules struct {
	categories []CategoryRule
	templates  map[domain.Category][]string
}

// File is the on-disk YAML layout.
type File struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
	Templates map[string][]string `yaml:"templates"`
}

// New validates and copies the given tables. Keywords are lower-cased.
// General must not appear in the category list since it is the fallback.
func New(categories []CategoryRule, templates map[domain.Category][]string) (*Rules, error) {
	var errs []error

	seen := make(map[domain.Category]bool, len(categories))
	cats := make([]CategoryRule, 0, len(categories))
	for _, c := range categories {
		switch {
		case !c.Category.Known():
			errs = append(errs, fmt.Errorf("unknown category %q", c.Category))
			continue
		case c.Category == domain.CategoryGeneral:
			errs = append(errs, errors.New("General is the fallback and takes no keywords"))
			continue
		case seen[c.Category]:
			errs = append(errs, fmt.Errorf("category %q listed twice", c.Category))
			continue
		}
		seen[c.Category] = true

		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			errs = append(errs, fmt.Errorf("category %q has no keywords", c.Category))
			continue
		}
		cats = append(cats, CategoryRule{Category: c.Category, Keywords: kws})
	}

	tpls := make(map[domain.Category][]string, len(templates))
	for cat, list := range templates {
		if !cat.Known() {
			errs = append(errs, fmt.Errorf("templates for unknown category %q", cat))
			continue
		}
		if len(list) == 0 {
			continue
		}
		tpls[cat] = append([]string(nil), list...)
	}
	if len(tpls[domain.CategoryGeneral]) == 0 {
		errs = append(errs, errors.New("General templates are required"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Rules{categories: cats, templates: tpls}, nil
}

// Load reads a YAML rules file.
func Load(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML rules content.
func Parse(raw []byte) (*Rules, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	cats := make([]CategoryRule, 0, len(f.Categories))
	for _, c := range f.Categories {
		cats = append(cats, CategoryRule{Category: domain.Category(c.Name), Keywords: c.Keywords})
	}
	tpls := make(map[domain.Category][]string, len(f.Templates))
	for name, list := range f.Templates {
		tpls[domain.Category(name)] = list
	}
	return New(cats, tpls)
}

// Categories returns the ordered category rules. Order is the tie-break.
func (r *Rules) Categories() []CategoryRule {
	out := make([]CategoryRule, len(r.categories))
	for i, c := range r.categories {
		out[i] = CategoryRule{Category: c.Category, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Templates returns the reply pool for a category, falling back to General.
func (r *Rules) Templates(cat domain.Category) []string {
	list, ok := r.templates[cat]
	if !ok {
		list = r.templates[domain.CategoryGeneral]
	}
	return append([]string(nil), list...)
}

// Match returns the first category whose keyword occurs in text, or General.
func (r *Rules) Match(text string) domain.Category {
	lower := strings.ToLower(text)
	for _, c := range r.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Category
			}
		}
	}
	return domain.CategoryGeneral
}
