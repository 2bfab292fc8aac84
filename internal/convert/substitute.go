package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/template"
	"gopkg.in/yaml.v3"
)

// substituter resolves ${VAR}, ${VAR:-default} and $VAR references against
// the ambient variables and remembers which names were missing.
type substituter struct {
	vars    map[string]string
	missing []string
	seen    map[string]bool
}

func newSubstituter(vars map[string]string) *substituter {
	return &substituter{vars: vars, seen: make(map[string]bool)}
}

func (s *substituter) lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// string substitutes a single value. Unset variables without a default
// become empty strings and are recorded in missing.
func (s *substituter) string(value string) (string, error) {
	s.track(value)
	return template.SubstituteWithOptions(value, s.lookup, template.WithoutLogging)
}

// track records referenced names that are unset and carry neither a default
// (empty ones included) nor a required marker.
func (s *substituter) track(value string) {
	vars := template.ExtractVariables(map[string]any{"value": value}, template.DefaultPattern)
	names := make([]string, 0, len(vars))
	for name, v := range vars {
		if v.DefaultValue != "" || v.PresenceValue != "" || v.Required || hasDefault(value, name) {
			continue
		}
		if _, ok := s.vars[name]; ok || s.seen[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.seen[name] = true
		s.missing = append(s.missing, name)
	}
}

// node rewrites every string scalar under n in place. Mapping keys are left
// alone. The returned error names the top-level service key that failed.
func (s *substituter) node(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := s.walk(n.Content[i+1]); err != nil {
			return &fieldErr{field: n.Content[i].Value, err: err}
		}
	}
	return nil
}

func (s *substituter) walk(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" {
			return nil
		}
		v, err := s.string(n.Value)
		if err != nil {
			return err
		}
		if v != n.Value {
			n.Value = v
			// plain scalars may become bool or number, so "${RO:-true}" can
			// feed a bool; anything else stays a string, null included
			if n.Style == 0 && v != "" {
				n.Tag = ""
				switch n.ShortTag() {
				case "!!bool", "!!int", "!!float":
				default:
					n.Tag = "!!str"
				}
			}
		}
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			if err := s.walk(n.Content[i]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// hasDefault reports whether value references name with a default clause,
// "${NAME:-...}" or "${NAME-...}", even an empty one.
func hasDefault(value, name string) bool {
	return strings.Contains(value, "${"+name+":-") || strings.Contains(value, "${"+name+"-")
}

type fieldErr struct {
	field string
	err   error
}

func (e *fieldErr) Error() string { return fmt.Sprintf("%s: %v", e.field, e.err) }
func (e *fieldErr) Unwrap() error { return e.err }
