package skills

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds the aggregator configuration. Relative artifact paths are
// resolved against the first root.
type Config struct {
	Roots      []string
	IndexFile  string
	ReadmeFile string
	ConfigFile string
	Categories map[Category][]string
}

// NewConfig creates a Config with default values
func NewConfig() Config {
	return Config{
		Roots:      []string{"."},
		IndexFile:  "SKILLS.md",
		ReadmeFile: "README.md",
		ConfigFile: "skills.json",
	}
}

// Drift describes a generated artifact that differs from the file on disk
type Drift struct {
	Path string `json:"path" yaml:"path"`
	Diff string `json:"diff" yaml:"diff"`
}

// Aggregator validates SKILL.md files and generates the derived artifacts
type Aggregator struct {
	config      Config
	discovery   *Discovery
	categorizer *Categorizer
	now         func() time.Time
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithClock overrides the clock used for generation timestamps
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates an aggregator for the given configuration
func NewAggregator(config Config, opts ...AggregatorOption) (*Aggregator, error) {
	if len(config.Roots) == 0 {
		config.Roots = NewConfig().Roots
	}

	discovery, err := NewDiscovery(WithRoots(config.Roots...))
	if err != nil {
		return nil, err
	}
	categorizer, err := NewCategorizer(config.Categories)
	if err != nil {
		return nil, err
	}

	a := &Aggregator{
		config:      config,
		discovery:   discovery,
		categorizer: categorizer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Aggregator) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.config.Roots[0], path)
}

// Validate scans every root and validates each SKILL.md file. Per-file
// problems are recorded in the report and never stop the scan.
func (a *Aggregator) Validate(ctx context.Context) (*Report, error) {
	report := &Report{}
	err := telemetry.WithSpan(ctx, "skills.validate", func(ctx context.Context) error {
		paths, err := a.discovery.Find(ctx)
		if err != nil {
			return err
		}

		validator := NewValidator(a.categorizer)
		for _, path := range paths {
			result := validator.ValidateFile(path)
			log := logger.G(ctx).WithField("path", path)
			for _, e := range result.Errors {
				log.WithField("error", e).Debug("skill validation error")
			}
			for _, w := range result.Warnings {
				log.WithField("warning", w).Debug("skill validation warning")
			}
			report.Files = append(report.Files, result)
		}

		telemetry.SetAttributes(ctx,
			attribute.Int("skills.files", len(report.Files)),
			attribute.Int("skills.errors", report.ErrorCount()),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// List returns the discovered skills sorted by name. The first file
// declaring a name wins; invalid files are left out.
func (a *Aggregator) List(ctx context.Context) ([]*Skill, error) {
	report, err := a.Validate(ctx)
	if err != nil {
		return nil, err
	}
	return report.Skills(), nil
}

// Generate renders every artifact from the valid skills in report. The
// README artifact is only produced when the README file exists.
func (a *Aggregator) Generate(ctx context.Context, report *Report) ([]Artifact, error) {
	skills := report.Skills()
	generatedAt := a.now()

	indexPath := a.resolve(a.config.IndexFile)
	configPath := a.resolve(a.config.ConfigFile)

	index, err := RenderIndex(skills, indexPath, generatedAt)
	if err != nil {
		return nil, err
	}
	config, err := RenderConfig(skills, configPath, generatedAt)
	if err != nil {
		return nil, err
	}
	artifacts := []Artifact{
		{Path: indexPath, Content: index},
		{Path: configPath, Content: config},
	}

	if readmePath := a.resolve(a.config.ReadmeFile); readmePath != "" {
		readme, err := os.ReadFile(readmePath)
		switch {
		case os.IsNotExist(err):
			logger.G(ctx).WithField("path", readmePath).Warn("readme not found, skipping installation section")
		case err != nil:
			return nil, errors.Wrap(err, "failed to read readme")
		default:
			section, err := RenderInstallation(skills, readmePath, indexPath)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, Artifact{
				Path:    readmePath,
				Content: []byte(ReplaceSection(string(readme), installationHeading, section)),
			})
		}
	}

	return artifacts, nil
}

// Write writes every artifact to disk
func (a *Aggregator) Write(ctx context.Context, artifacts []Artifact) error {
	for _, artifact := range artifacts {
		if err := os.WriteFile(artifact.Path, artifact.Content, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", artifact.Path)
		}
		logger.G(ctx).WithField("path", artifact.Path).Info("wrote skills artifact")
	}
	return nil
}

// Check compares artifacts with the files on disk, ignoring generation
// timestamps, and returns a unified diff for every file that differs.
func (a *Aggregator) Check(_ context.Context, artifacts []Artifact) ([]Drift, error) {
	var drifts []Drift
	for _, artifact := range artifacts {
		current, err := os.ReadFile(artifact.Path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", artifact.Path)
		}

		oldContent, newContent := normalize(current), normalize(artifact.Content)
		if oldContent == newContent {
			continue
		}
		drifts = append(drifts, Drift{
			Path: artifact.Path,
			Diff: udiff.Unified(artifact.Path, artifact.Path, oldContent, newContent),
		})
	}
	return drifts, nil
}

// Aggregate validates, generates and writes the artifacts in one pass
func (a *Aggregator) Aggregate(ctx context.Context) (*Report, []Artifact, error) {
	report, err := a.Validate(ctx)
	if err != nil {
		return nil, nil, err
	}
	artifacts, err := a.Generate(ctx, report)
	if err != nil {
		return report, nil, err
	}
	if err := a.Write(ctx, artifacts); err != nil {
		return report, nil, err
	}
	return report, artifacts, nil
}
