package analyzer

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/gl/internal/typesystem"
)

// Entry is the inferred type of one top-level name.
type Entry struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
}

// Report lists the top-level names of a module with their inferred types,
// sorted by name.
type Report struct {
	Entries []Entry `yaml:"entries"`
}

// NewReport builds a report from the root scope of an inference run.
func NewReport(root *TypeEnv) *Report {
	r := &Report{}
	for _, name := range root.Names() {
		t, _ := root.Get(name)
		r.Entries = append(r.Entries, Entry{Name: name, Types: renderMembers(t)})
	}
	return r
}

func renderMembers(t typesystem.Type) []string {
	set, ok := t.(*typesystem.TypeSet)
	if !ok {
		return []string{typesystem.Render(t, map[*typesystem.FunctionType]bool{})}
	}
	if set.Len() == 0 {
		return []string{typesystem.Unresolved.String()}
	}
	out := make([]string, 0, set.Len())
	for _, m := range set.Members() {
		out = append(out, typesystem.Render(m, map[*typesystem.FunctionType]bool{}))
	}
	return out
}

// Lookup returns the entry for name.
func (r *Report) Lookup(name string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Text renders one `name: t1|t2` line per entry.
func (r *Report) Text() string {
	var out strings.Builder
	for _, e := range r.Entries {
		out.WriteString(e.Name)
		out.WriteString(": ")
		out.WriteString(strings.Join(e.Types, "|"))
		out.WriteString("\n")
	}
	return out.String()
}

// YAML renders the report as a YAML document.
func (r *Report) YAML() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
