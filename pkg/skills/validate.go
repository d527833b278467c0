package skills

import (
	"fmt"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const maxDescriptionLength = 1024

var namePattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

// Validation sentinels
var (
	ErrMissingField  = errors.New("required field missing")
	ErrInvalidType   = errors.New("field must be a string")
	ErrInvalidName   = errors.New("name must match ^[a-z0-9-]{1,64}$")
	ErrInvalidLength = errors.New("description must be 1 to 1024 characters")
	ErrDuplicateName = errors.New("duplicate skill name")
)

// validateMetadata checks the front matter fields and returns every error found
func validateMetadata(metadata map[string]any) (name, description string, err error) {
	var result *multierror.Error

	name, fieldErr := stringField(metadata, "name")
	if fieldErr != nil {
		result = multierror.Append(result, fieldErr)
	} else if !namePattern.MatchString(name) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidName, "name %q", name))
	}

	description, fieldErr = stringField(metadata, "description")
	if fieldErr != nil {
		result = multierror.Append(result, fieldErr)
	} else if n := utf8.RuneCountInString(description); n < 1 || n > maxDescriptionLength {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidLength, "description has %d characters", n))
	}

	return name, description, result.ErrorOrNil()
}

func stringField(metadata map[string]any, field string) (string, error) {
	raw, ok := metadata[field]
	if !ok || raw == nil {
		return "", errors.Wrap(ErrMissingField, field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidType, "%s is %T", field, raw)
	}
	return s, nil
}

// Validator validates parsed documents and tracks names across files
type Validator struct {
	categorizer *Categorizer
	seen        map[string]string
}

// NewValidator creates a validator that categorizes valid skills with c
func NewValidator(c *Categorizer) *Validator {
	return &Validator{categorizer: c, seen: map[string]string{}}
}

// ValidateFile parses and validates a single SKILL.md file. It never fails:
// read and parse problems are recorded as file errors.
func (v *Validator) ValidateFile(path string) *FileResult {
	result := &FileResult{Path: path}

	doc, err := Parse(path)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}

	name, description, err := validateMetadata(doc.Metadata)
	var errs *multierror.Error
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	dir := filepath.Dir(path)
	if name != "" {
		if first, dup := v.seen[name]; dup {
			errs = multierror.Append(errs, errors.Wrapf(ErrDuplicateName, "%q already defined in %s", name, first))
		} else {
			v.seen[name] = path
		}
		if base := filepath.Base(dir); base != name {
			result.Warnings = append(result.Warnings, fmt.Sprintf("name %q does not match directory %q", name, base))
		}
	}
	if !doc.HasWhenToUse {
		result.Warnings = append(result.Warnings, `missing "When to Use" section`)
	}

	if errs != nil {
		for _, e := range errs.WrappedErrors() {
			result.Errors = append(result.Errors, e.Error())
		}
		return result
	}

	result.Skill = &Skill{
		Name:        name,
		Description: description,
		Category:    v.categorizer.Categorize(name),
		Path:        path,
		Directory:   dir,
		Content:     doc.Body,
	}
	return result
}
