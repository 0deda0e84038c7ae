package classify

import (
	"fmt"
	"strings"

	"github.com/julianshen/chunkmap/internal/project"
)

// namePlaceholder is replaced by the import identifier in a probe pattern.
const namePlaceholder = "{name}"

// PathTemplate maps an import identifier to a candidate project-relative
// path.
type PathTemplate struct {
	Pattern string
}

// Template parses a probe pattern such as "src/{name}.py".
func Template(pattern string) (PathTemplate, error) {
	if !strings.Contains(pattern, namePlaceholder) {
		return PathTemplate{}, fmt.Errorf("probe pattern %q has no %s placeholder", pattern, namePlaceholder)
	}
	return PathTemplate{Pattern: pattern}, nil
}

// MustTemplate is like Template but panics on an invalid pattern.
func MustTemplate(pattern string) PathTemplate {
	t, err := Template(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// Path returns the candidate path for name.
func (t PathTemplate) Path(name string) string {
	return strings.ReplaceAll(t.Pattern, namePlaceholder, name)
}

// Probes is an ordered list of path templates. The first template whose
// path exists wins.
type Probes []PathTemplate

// DefaultInternalProbes decide whether an identifier is a project module.
func DefaultInternalProbes() Probes {
	return Probes{
		MustTemplate("{name}"),
		MustTemplate("{name}.py"),
		MustTemplate("src/{name}"),
		MustTemplate("lib/{name}"),
	}
}

// DefaultOwnerProbes locate the source file that defines an identifier,
// so its owning chunk can be looked up.
func DefaultOwnerProbes() Probes {
	return Probes{
		MustTemplate("{name}.py"),
		MustTemplate("src/{name}.py"),
		MustTemplate("{name}.rs"),
		MustTemplate("src/{name}.rs"),
	}
}

// With returns a copy of p with extra templates appended.
func (p Probes) With(extra ...PathTemplate) Probes {
	out := make(Probes, 0, len(p)+len(extra))
	out = append(out, p...)
	return append(out, extra...)
}

// Resolve returns the first candidate path for name that exists in the
// project.
func (p Probes) Resolve(pc *project.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, t := range p {
		candidate := t.Path(name)
		if pc.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
