package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SkillConfig holds configuration for the skill commands
type SkillConfig struct {
	Root       string
	IndexFile  string
	ReadmeFile string
	ConfigFile string
	Output     string
	Check      bool
	Watch      bool
	Debounce   time.Duration
}

// NewSkillConfig creates a new SkillConfig with default values
func NewSkillConfig() *SkillConfig {
	defaults := skills.NewConfig()
	return &SkillConfig{
		Root:       defaults.Roots[0],
		IndexFile:  defaults.IndexFile,
		ReadmeFile: defaults.ReadmeFile,
		ConfigFile: defaults.ConfigFile,
		Output:     OutputText,
		Debounce:   skills.DefaultDebounce,
	}
}

// aggregatorConfig converts the command configuration for the skills package
func (c *SkillConfig) aggregatorConfig() skills.Config {
	config := skills.Config{
		Roots:      []string{c.Root},
		IndexFile:  c.IndexFile,
		ReadmeFile: c.ReadmeFile,
		ConfigFile: c.ConfigFile,
	}

	if raw := viper.GetStringMapStringSlice("skills.categories"); len(raw) > 0 {
		config.Categories = make(map[skills.Category][]string, len(raw))
		for category, patterns := range raw {
			config.Categories[skills.Category(category)] = patterns
		}
	}
	return config
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Validate and aggregate SKILL.md metadata",
	Long: `Validate the front matter of every SKILL.md under the skills root and
regenerate the derived artifacts: the skills index, the README installation
section and the JSON skills configuration.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillValidateCmd = withTracing(&cobra.Command{
	Use:   "validate",
	Short: "Validate SKILL.md front matter",
	Long: `Validate every SKILL.md under the skills root. name must match
^[a-z0-9-]{1,64}$ and description must be 1 to 1024 characters. Duplicate
names are errors. A missing "When to Use" section or a name that differs from
its directory is a warning.

Exits 1 when any error is found; warnings never change the exit code.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runSkillValidate(cmd.Context(), getSkillConfigFromFlags(cmd))
	},
})

var skillAggregateCmd = withTracing(&cobra.Command{
	Use:   "aggregate",
	Short: "Regenerate the skills index, README section and skills config",
	Long: `Validate every SKILL.md and regenerate the derived artifacts from the valid
ones. Output is deterministic apart from the embedded generation timestamp.

With --check nothing is written: the regenerated artifacts are compared with
the files on disk, ignoring timestamps, and a diff is printed for each file
that is out of date (exit 1). With --watch the artifacts are regenerated
whenever a SKILL.md changes.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runSkillAggregate(cmd.Context(), getSkillConfigFromFlags(cmd))
	},
})

var skillListCmd = withTracing(&cobra.Command{
	Use:   "list",
	Short: "List valid skills with their categories",
	Run: func(cmd *cobra.Command, _ []string) {
		runSkillList(cmd.Context(), getSkillConfigFromFlags(cmd))
	},
})

func init() {
	defaults := NewSkillConfig()
	skillCmd.PersistentFlags().String("root", defaults.Root, "Directory scanned for **/SKILL.md")
	skillCmd.PersistentFlags().StringP("output", "o", defaults.Output, "Output format (text, json, yaml)")
	viper.BindPFlag("skills.root", skillCmd.PersistentFlags().Lookup("root"))

	skillAggregateCmd.Flags().String("index", defaults.IndexFile, "Skills index file, relative to the root")
	skillAggregateCmd.Flags().String("readme", defaults.ReadmeFile, "README whose Installation section is regenerated")
	skillAggregateCmd.Flags().String("config", defaults.ConfigFile, "JSON skills configuration file")
	skillAggregateCmd.Flags().Bool("check", defaults.Check, "Report artifacts that are out of date instead of writing them")
	skillAggregateCmd.Flags().Bool("watch", defaults.Watch, "Regenerate artifacts when a SKILL.md changes")
	skillAggregateCmd.Flags().Duration("debounce", defaults.Debounce, "Quiet period before regenerating in watch mode")
	viper.BindPFlag("skills.index_file", skillAggregateCmd.Flags().Lookup("index"))
	viper.BindPFlag("skills.readme_file", skillAggregateCmd.Flags().Lookup("readme"))
	viper.BindPFlag("skills.config_file", skillAggregateCmd.Flags().Lookup("config"))

	skillCmd.AddCommand(skillValidateCmd)
	skillCmd.AddCommand(skillAggregateCmd)
	skillCmd.AddCommand(skillListCmd)
}

// getSkillConfigFromFlags extracts skill configuration from flags and config
func getSkillConfigFromFlags(cmd *cobra.Command) *SkillConfig {
	config := NewSkillConfig()

	if root := viper.GetString("skills.root"); root != "" {
		config.Root = root
	}
	if index := viper.GetString("skills.index_file"); index != "" {
		config.IndexFile = index
	}
	if readme := viper.GetString("skills.readme_file"); readme != "" {
		config.ReadmeFile = readme
	}
	if configFile := viper.GetString("skills.config_file"); configFile != "" {
		config.ConfigFile = configFile
	}
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	if check, err := cmd.Flags().GetBool("check"); err == nil {
		config.Check = check
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounce, err := cmd.Flags().GetDuration("debounce"); err == nil {
		config.Debounce = debounce
	}

	return config
}

func newAggregator(config *SkillConfig) *skills.Aggregator {
	aggregator, err := skills.NewAggregator(config.aggregatorConfig())
	if err != nil {
		presenter.Error(err, "failed to initialize skills aggregator")
		exit(1)
	}
	return aggregator
}

func runSkillValidate(ctx context.Context, config *SkillConfig) {
	report, err := newAggregator(config).Validate(ctx)
	if err != nil {
		presenter.Error(err, "failed to validate skills")
		exit(1)
	}

	if config.Output == OutputText {
		renderSkillReport(report)
	} else if err := writeResult(os.Stdout, config.Output, report, nil); err != nil {
		presenter.Error(err, "failed to write result")
		exit(1)
	}

	if !report.Passed() {
		exit(1)
	}
}

func renderSkillReport(report *skills.Report) {
	presenter.Section("Skill validation")
	for _, file := range report.Files {
		status := presenter.StatusOf(file.Valid())
		if file.Valid() && len(file.Warnings) > 0 {
			status = presenter.StatusUnknown
		}
		presenter.Check(file.Path, status, "")
		presenter.Bullets("  Errors", file.Errors)
		presenter.Bullets("  Warnings", file.Warnings)
	}

	summary := fmt.Sprintf("%d files, %d errors, %d warnings", len(report.Files), report.ErrorCount(), report.WarningCount())
	if report.Passed() {
		presenter.Success(summary)
	} else {
		presenter.Warning(summary)
	}
}

func runSkillAggregate(ctx context.Context, config *SkillConfig) {
	aggregator := newAggregator(config)

	if config.Check {
		runSkillCheck(ctx, aggregator)
		return
	}

	report, artifacts, err := aggregator.Aggregate(ctx)
	if err != nil {
		presenter.Error(err, "failed to aggregate skills")
		exit(1)
	}
	renderSkillReport(report)
	for _, artifact := range artifacts {
		presenter.Info(fmt.Sprintf("Wrote %s", artifact.Path))
	}

	if config.Watch {
		watchSkills(ctx, aggregator, config)
		return
	}

	if !report.Passed() {
		exit(1)
	}
}

func runSkillCheck(ctx context.Context, aggregator *skills.Aggregator) {
	report, err := aggregator.Validate(ctx)
	if err != nil {
		presenter.Error(err, "failed to validate skills")
		exit(1)
	}
	artifacts, err := aggregator.Generate(ctx, report)
	if err != nil {
		presenter.Error(err, "failed to generate skill artifacts")
		exit(1)
	}
	drifts, err := aggregator.Check(ctx, artifacts)
	if err != nil {
		presenter.Error(err, "failed to compare skill artifacts")
		exit(1)
	}

	if len(drifts) == 0 {
		presenter.Success("Skill artifacts are up to date")
		if !report.Passed() {
			exit(1)
		}
		return
	}

	for _, drift := range drifts {
		presenter.Warning(fmt.Sprintf("%s is out of date", drift.Path))
		fmt.Fprint(os.Stdout, drift.Diff)
	}
	presenter.Error(errors.Errorf("%d artifacts out of date", len(drifts)), "run 'a11y skill aggregate' to regenerate them")
	exit(1)
}

func watchSkills(ctx context.Context, aggregator *skills.Aggregator, config *SkillConfig) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	presenter.Info("Watching SKILL.md files... Press Ctrl+C to stop")

	err := skills.Watch(ctx, []string{config.Root}, config.Debounce, func(ctx context.Context, event skills.FileEvent) {
		presenter.Info(fmt.Sprintf("Change detected: %s (%s)", event.Path, event.Op))
		report, _, err := aggregator.Aggregate(ctx)
		if err != nil {
			presenter.Error(err, "failed to aggregate skills")
			return
		}
		logger.G(ctx).WithField("errors", report.ErrorCount()).Info("skill artifacts regenerated")
		renderSkillReport(report)
	})
	if err != nil {
		presenter.Error(err, "failed to watch skills")
		exit(1)
	}
}

func runSkillList(ctx context.Context, config *SkillConfig) {
	list, err := newAggregator(config).List(ctx)
	if err != nil {
		presenter.Error(err, "failed to list skills")
		exit(1)
	}

	if config.Output != OutputText {
		if err := writeResult(os.Stdout, config.Output, list, nil); err != nil {
			presenter.Error(err, "failed to write result")
			exit(1)
		}
		return
	}

	if len(list) == 0 {
		presenter.Info("No valid skills found")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t--------\t-----------")
	for _, skill := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Category, truncate(skill.Description, 60))
	}
	tw.Flush()
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
