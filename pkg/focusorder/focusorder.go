// Package focusorder validates the keyboard focus sequence of a page against
// landmark ordering rules and tab index hygiene.
package focusorder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Category is the landmark or control kind inferred from an element label
type Category string

const (
	CategoryHeader Category = "header"
	CategoryNav    Category = "nav"
	CategoryMain   Category = "main"
	CategoryButton Category = "button"
	CategoryInput  Category = "input"
	CategoryFooter Category = "footer"
	CategoryLink   Category = "link"
	CategoryOther  Category = "other"
)

// classification order matters: the first keyword found in a label wins
var classification = []struct {
	keyword  string
	category Category
}{
	{"header", CategoryHeader},
	{"nav", CategoryNav},
	{"main", CategoryMain},
	{"button", CategoryButton},
	{"input", CategoryInput},
	{"footer", CategoryFooter},
	{"link", CategoryLink},
}

// ErrInvalidSequence is returned when there is nothing to validate
var ErrInvalidSequence = errors.New("invalid focus sequence")

// Classify returns the category of an element label.
func Classify(label string) Category {
	l := strings.ToLower(label)
	for _, c := range classification {
		if strings.Contains(l, c.keyword) {
			return c.category
		}
	}
	return CategoryOther
}

// Sequence is the input of a focus order validation
type Sequence struct {
	Elements      []string `json:"elements"`
	TabOrder      []int    `json:"tabOrder"`
	ExpectedOrder []string `json:"expectedOrder,omitempty"`
}

// Stop is one element in the computed focus sequence
type Stop struct {
	Element  string   `json:"element"`
	TabIndex int      `json:"tabIndex"`
	Category Category `json:"category"`
}

// Report is the result of a focus order validation
type Report struct {
	FocusOrder      []Stop   `json:"focusOrder"`
	Logical         bool     `json:"logical"`
	Complete        bool     `json:"complete"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Passed reports whether the order is both logical and complete.
func (r *Report) Passed() bool {
	return r.Logical && r.Complete
}

// Validate applies each rule independently: header before main, footer not
// before main, unique tab indices, skip links for repeated navigation,
// contiguous indices (advisory only), and the expected order when given.
func Validate(seq Sequence) (*Report, error) {
	if len(seq.Elements) == 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "at least one element is required")
	}
	if len(seq.TabOrder) == 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "tab order must not be empty")
	}

	report := &Report{
		Logical:         true,
		Complete:        len(seq.Elements) == len(seq.TabOrder),
		Issues:          []string{},
		Recommendations: []string{},
	}

	n := min(len(seq.Elements), len(seq.TabOrder))
	stops := make([]Stop, n)
	for i := 0; i < n; i++ {
		stops[i] = Stop{
			Element:  seq.Elements[i],
			TabIndex: seq.TabOrder[i],
			Category: Classify(seq.Elements[i]),
		}
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].TabIndex < stops[j].TabIndex })
	report.FocusOrder = stops

	if !report.Complete {
		report.Issues = append(report.Issues,
			fmt.Sprintf("%d elements but %d tab order entries; every element needs a tab position", len(seq.Elements), len(seq.TabOrder)))
	}

	header := firstIndex(stops, CategoryHeader)
	mainContent := firstIndex(stops, CategoryMain)
	footer := firstIndex(stops, CategoryFooter)

	if header >= 0 && mainContent >= 0 && header > mainContent {
		report.Logical = false
		report.Issues = append(report.Issues, "Header receives focus after main content")
	}
	if footer >= 0 && mainContent >= 0 && footer < mainContent {
		report.Logical = false
		report.Issues = append(report.Issues, "Footer receives focus before main content")
	}

	if dups := duplicates(seq.TabOrder); len(dups) > 0 {
		report.Logical = false
		report.Issues = append(report.Issues,
			fmt.Sprintf("Duplicate tab index values %v may create a focus trap", dups))
	}

	if navs := countCategory(stops, CategoryNav); navs > 1 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Found %d navigation regions; add skip links so keyboard users can bypass them", navs))
	}

	if hasGaps(seq.TabOrder) {
		report.Recommendations = append(report.Recommendations,
			"Tab index sequence has gaps; consider a contiguous sequence or relying on DOM order")
	}

	if len(seq.ExpectedOrder) > 0 && !matchesExpected(stops, seq.ExpectedOrder) {
		report.Logical = false
		report.Issues = append(report.Issues,
			fmt.Sprintf("Focus order %v does not match expected order %v", elementNames(stops), seq.ExpectedOrder))
	}

	return report, nil
}

func firstIndex(stops []Stop, c Category) int {
	for i, s := range stops {
		if s.Category == c {
			return i
		}
	}
	return -1
}

func countCategory(stops []Stop, c Category) int {
	n := 0
	for _, s := range stops {
		if s.Category == c {
			n++
		}
	}
	return n
}

func duplicates(order []int) []int {
	seen := make(map[int]int)
	var dups []int
	for _, v := range order {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	sort.Ints(dups)
	return dups
}

func hasGaps(order []int) bool {
	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > 1 {
			return true
		}
	}
	return false
}

func elementNames(stops []Stop) []string {
	names := make([]string, len(stops))
	for i, s := range stops {
		names[i] = s.Element
	}
	return names
}

func matchesExpected(stops []Stop, expected []string) bool {
	if len(stops) != len(expected) {
		return false
	}
	for i, s := range stops {
		if s.Element != expected[i] {
			return false
		}
	}
	return true
}
