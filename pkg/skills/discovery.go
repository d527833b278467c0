package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	skillFileName = "SKILL.md"
	skillPattern  = "**/" + skillFileName
)

// skipped directory names during the scan
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Discovery finds SKILL.md files under a set of root directories
type Discovery struct {
	roots []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithRoots sets the directories to scan
func WithRoots(roots ...string) Option {
	return func(d *Discovery) error {
		for _, root := range roots {
			info, err := os.Stat(root)
			if err != nil {
				return errors.Wrapf(err, "failed to stat skills root %s", root)
			}
			if !info.IsDir() {
				return errors.Errorf("skills root %s is not a directory", root)
			}
		}
		d.roots = roots
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance. Without options the
// current directory is scanned.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{roots: []string{"."}}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Roots returns the scanned directories
func (d *Discovery) Roots() []string {
	return d.roots
}

// Find returns the SKILL.md paths under every root, sorted within each root.
// Hidden directories and dependency folders are skipped.
func (d *Discovery) Find(ctx context.Context) ([]string, error) {
	var paths []string
	for _, root := range d.roots {
		matches, err := doublestar.Glob(os.DirFS(root), skillPattern)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", root)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if ignored(match) {
				continue
			}
			paths = append(paths, filepath.Join(root, filepath.FromSlash(match)))
		}
		logger.G(ctx).WithField("root", root).WithField("count", len(matches)).Debug("scanned skills root")
	}
	return paths, nil
}

func ignored(match string) bool {
	parts := strings.Split(match, "/")
	for _, part := range parts[:len(parts)-1] {
		if strings.HasPrefix(part, ".") || ignoredDirs[part] {
			return true
		}
	}
	return false
}

// Document is a parsed SKILL.md file
type Document struct {
	Path         string
	Metadata     map[string]any
	Body         string
	HasWhenToUse bool
}

// Parse reads a SKILL.md file and extracts its front matter and body
func Parse(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}
	return parseContent(path, content)
}

func parseContent(path string, content []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	pctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid front matter")
	}
	if len(metaData) == 0 {
		return nil, errors.New("missing front matter")
	}

	return &Document{
		Path:         path,
		Metadata:     metaData,
		Body:         extractBodyContent(string(content)),
		HasWhenToUse: hasHeading(doc, content, "when to use"),
	}, nil
}

// hasHeading reports whether any heading's text contains want, ignoring case
func hasHeading(doc ast.Node, source []byte, want string) bool {
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		if strings.Contains(strings.ToLower(headingText(n, source)), want) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return found
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// extractBodyContent removes YAML frontmatter and returns the body
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
