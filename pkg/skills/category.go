package skills

import (
	"sort"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Category classifies a skill by its name suffix
type Category string

// Known categories
const (
	CategoryTool   Category = "tool"
	CategoryDeep   Category = "deep"
	CategoryRouter Category = "router"
)

// DefaultCategoryPatterns maps categories to name patterns. Names matching
// none of them fall back to CategoryRouter.
func DefaultCategoryPatterns() map[Category][]string {
	return map[Category][]string{
		CategoryTool: {
			"*-checker",
			"*-calculator",
			"*-simulator",
			"*-tester",
			"*-converter",
			"*-validator",
		},
		CategoryDeep: {"*-deep"},
	}
}

type categoryRule struct {
	category Category
	patterns []glob.Glob
}

// Categorizer assigns categories to skill names using glob patterns
type Categorizer struct {
	rules    []categoryRule
	fallback Category
}

// NewCategorizer compiles the given patterns. Rules are evaluated tool first,
// then deep, then any other category in alphabetical order.
func NewCategorizer(patterns map[Category][]string) (*Categorizer, error) {
	if len(patterns) == 0 {
		patterns = DefaultCategoryPatterns()
	}

	c := &Categorizer{fallback: CategoryRouter}
	for _, category := range categoryOrder(patterns) {
		rule := categoryRule{category: category}
		for _, p := range patterns[category] {
			g, err := glob.Compile(p)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid pattern %q for category %s", p, category)
			}
			rule.patterns = append(rule.patterns, g)
		}
		c.rules = append(c.rules, rule)
	}
	return c, nil
}

func categoryOrder(patterns map[Category][]string) []Category {
	rank := func(c Category) int {
		switch c {
		case CategoryTool:
			return 0
		case CategoryDeep:
			return 1
		default:
			return 2
		}
	}

	order := make([]Category, 0, len(patterns))
	for c := range patterns {
		order = append(order, c)
	}
	sort.Slice(order, func(i, j int) bool {
		ri, rj := rank(order[i]), rank(order[j])
		if ri != rj {
			return ri < rj
		}
		return order[i] < order[j]
	})
	return order
}

// Categorize returns the category of the first rule matching name
func (c *Categorizer) Categorize(name string) Category {
	for _, rule := range c.rules {
		for _, g := range rule.patterns {
			if g.Match(name) {
				return rule.category
			}
		}
	}
	return c.fallback
}
