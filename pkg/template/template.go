package template

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches a single substitution token.
var tokenPattern = regexp.MustCompile(`\{\{[A-Za-z0-9_-]+\}\}`)

// Vars maps template variable names to their replacement values.
type Vars map[string]string

// Template is a loaded template body with its discovered variables.
// It is immutable after construction.
type Template struct {
	body      string
	variables []string
}

// Parse builds a Template from an in-memory body.
func Parse(body string) *Template {
	return &Template{
		body:      body,
		variables: DiscoverVariables(body),
	}
}

// Body returns the raw template content.
func (t *Template) Body() string {
	return t.body
}

// Variables returns the distinct variable names in first-seen order.
func (t *Template) Variables() []string {
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

// Missing returns the declared variables that have no key in vars,
// in declaration order.
func (t *Template) Missing(vars Vars) []string {
	var missing []string
	for _, name := range t.variables {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Render replaces every {{key}} for each key in vars with its value.
// Values are inserted verbatim and never re-expanded. Tokens without a
// value stay in the output untouched.
func (t *Template) Render(vars Vars) string {
	if len(vars) == 0 {
		return t.body
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", vars[k])
	}

	return strings.NewReplacer(pairs...).Replace(t.body)
}

// DiscoverVariables scans body for tokens and returns their names without
// delimiters, deduplicated, in first-seen order.
func DiscoverVariables(body string) []string {
	matches := tokenPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[2 : len(m)-2]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
