// Package skills validates and aggregates the SKILL.md documents that ship
// next to the accessibility checks. Each skill is a directory holding a
// SKILL.md file with YAML front matter (name, description) and a markdown
// body. The aggregator turns the validated set into an index document, the
// README installation section and a JSON skills configuration.
package skills

// Skill represents a validated SKILL.md document
type Skill struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Path        string   `json:"path" yaml:"path"`           // path of the SKILL.md file
	Directory   string   `json:"directory" yaml:"directory"` // directory containing SKILL.md
	Content     string   `json:"-" yaml:"-"`                 // markdown body without front matter
}

// FileResult holds the outcome of validating a single SKILL.md file.
// Errors exclude the file from generated artifacts, warnings do not.
type FileResult struct {
	Path     string   `json:"path" yaml:"path"`
	Skill    *Skill   `json:"skill,omitempty" yaml:"skill,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Valid reports whether the file produced no validation errors
func (r *FileResult) Valid() bool {
	return len(r.Errors) == 0
}

// Report is the result of validating every SKILL.md under the configured roots
type Report struct {
	Files []*FileResult `json:"files" yaml:"files"`
}

// Skills returns the valid skills sorted by name
func (r *Report) Skills() []*Skill {
	skills := make([]*Skill, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Valid() && f.Skill != nil {
			skills = append(skills, f.Skill)
		}
	}
	sortSkills(skills)
	return skills
}

// ErrorCount returns the number of validation errors across all files
func (r *Report) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// WarningCount returns the number of warnings across all files
func (r *Report) WarningCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Warnings)
	}
	return n
}

// Passed reports whether no file produced an error. Warnings never fail a report.
func (r *Report) Passed() bool {
	return r.ErrorCount() == 0
}
