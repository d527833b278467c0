package skills

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
)

//go:embed templates/index.md.tmpl
var indexTemplate string

//go:embed templates/installation.md.tmpl
var installationTemplate string

var templates = template.Must(template.New("index").Parse(indexTemplate))

func init() {
	template.Must(templates.New("installation").Parse(installationTemplate))
}

const installationHeading = "## Installation"

// generatedLine matches the timestamp lines embedded in generated artifacts
var generatedLine = regexp.MustCompile(`(?m)^[ \t]*(<!-- generated_at: .* -->|"generated_at": ".*",?)\n?`)

// Artifact is a generated file and its full content
type Artifact struct {
	Path    string
	Content []byte
}

type indexEntry struct {
	Name    string
	Link    string
	Summary string
}

type indexGroup struct {
	Title  string
	Skills []indexEntry
}

var groupTitles = map[Category]string{
	CategoryRouter: "Routers",
	CategoryTool:   "Tools",
	CategoryDeep:   "Deep Dives",
}

func groupRank(c Category) int {
	switch c {
	case CategoryRouter:
		return 0
	case CategoryTool:
		return 1
	case CategoryDeep:
		return 2
	default:
		return 3
	}
}

func sortSkills(skills []*Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Name < skills[j].Name
	})
}

// RenderIndex renders the aggregate index document. Links are relative to
// the directory of indexPath.
func RenderIndex(skills []*Skill, indexPath string, generatedAt time.Time) ([]byte, error) {
	byCategory := map[Category][]indexEntry{}
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], indexEntry{
			Name:    s.Name,
			Link:    relativeLink(filepath.Dir(indexPath), s.Path),
			Summary: strings.Join(strings.Fields(s.Description), " "),
		})
	}

	categories := make([]Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		ri, rj := groupRank(categories[i]), groupRank(categories[j])
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})

	groups := make([]indexGroup, 0, len(categories))
	for _, c := range categories {
		title, ok := groupTitles[c]
		if !ok {
			title = string(c)
		}
		groups = append(groups, indexGroup{Title: title, Skills: byCategory[c]})
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "index", map[string]any{
		"GeneratedAt": generatedAt.UTC().Format(time.RFC3339),
		"Groups":      groups,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render skills index")
	}
	return buf.Bytes(), nil
}

type installEntry struct {
	Dir string
}

// RenderInstallation renders the README installation section
func RenderInstallation(skills []*Skill, readmePath, indexPath string) (string, error) {
	base := filepath.Dir(readmePath)
	entries := make([]installEntry, 0, len(skills))
	for _, s := range skills {
		entries = append(entries, installEntry{Dir: relativeLink(base, s.Directory)})
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "installation", map[string]any{
		"Skills": entries,
		"Index":  relativeLink(base, indexPath),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render installation section")
	}
	return buf.String(), nil
}

// ReplaceSection replaces the markdown section starting at the heading line
// up to the next heading of the same level. The section is appended when the
// heading is absent.
func ReplaceSection(doc, heading, section string) string {
	lines := strings.SplitAfter(doc, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimRight(line, "\r\n") == heading {
			start = i
			break
		}
	}

	if start == -1 {
		if doc != "" && !strings.HasSuffix(doc, "\n") {
			doc += "\n"
		}
		if doc != "" {
			doc += "\n"
		}
		return doc + section
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[:start], ""))
	b.WriteString(section)
	if end < len(lines) {
		if !strings.HasSuffix(section, "\n\n") {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(lines[end:], ""))
	}
	return b.String()
}

type configEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Path        string   `json:"path"`
}

type configDocument struct {
	GeneratedAt string        `json:"generated_at"`
	Skills      []configEntry `json:"skills"`
}

// RenderConfig renders the JSON skills configuration mapping each skill to
// its category. Paths are relative to the directory of configPath.
func RenderConfig(skills []*Skill, configPath string, generatedAt time.Time) ([]byte, error) {
	doc := configDocument{
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Skills:      make([]configEntry, 0, len(skills)),
	}
	for _, s := range skills {
		doc.Skills = append(doc.Skills, configEntry{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Path:        relativeLink(filepath.Dir(configPath), s.Directory),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal skills config")
	}
	return append(data, '\n'), nil
}

// normalize strips generation timestamps so artifacts can be compared
func normalize(content []byte) string {
	return generatedLine.ReplaceAllString(string(content), "")
}

func relativeLink(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		rel = target
	}
	return filepath.ToSlash(rel)
}
