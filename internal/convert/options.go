package convert

import (
	"io"
	"strings"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/ThomasCrouzet/compose2easypanel/internal/util"
	"github.com/sirupsen/logrus"
)

// DefaultProjectName is used when the caller supplies none.
const DefaultProjectName = "my-project"

// ProjectName picks the output project name: an explicit name as given,
// then the compose file's top-level name once sanitized, then
// DefaultProjectName.
func ProjectName(explicit, composeName string) string {
	if explicit != "" {
		return explicit
	}
	if name := util.SanitizeName(composeName); name != "" {
		return name
	}
	return DefaultProjectName
}

// Options tunes a conversion run. The zero value disables networks, volumes
// and substitution; use DefaultOptions for the documented defaults.
type Options struct {
	IncludeNetworks       bool
	IncludeVolumes        bool
	SubstituteEnvironment bool

	// TypeOverrides forces a kind per service name and wins over both the
	// EASYPANEL_SERVICE_TYPE variable and image detection. An exact name
	// match is tried first, then a case-insensitive one, since config
	// loaders may lowercase map keys.
	TypeOverrides map[string]model.ServiceKind

	// Strict aborts on the first ValidationError instead of dropping the
	// offending service.
	Strict bool

	// StripTemplates replaces Jinja2 {{ ... }} expressions before parsing.
	StripTemplates bool

	Logger logrus.FieldLogger
}

// DefaultOptions returns options with networks, volumes and substitution
// enabled.
func DefaultOptions() Options {
	return Options{
		IncludeNetworks:       true,
		IncludeVolumes:        true,
		SubstituteEnvironment: true,
	}
}

func (o Options) override(service string) model.ServiceKind {
	if kind, ok := o.TypeOverrides[service]; ok {
		return kind
	}
	// smallest matching key wins so the result does not depend on map order
	var match string
	var kind model.ServiceKind
	for name, k := range o.TypeOverrides {
		if strings.EqualFold(name, service) && (kind == "" || name < match) {
			match, kind = name, k
		}
	}
	return kind
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) policy(diagnostics *[]Diagnostic) errorPolicy {
	if o.Strict {
		return failFast{}
	}
	return collectAll{diagnostics: diagnostics}
}

// Result is a converted document plus the diagnostics gathered on the way.
type Result struct {
	Document    *model.SchemaDocument
	Diagnostics []Diagnostic
}

// Dropped returns the names of services left out because of errors.
func (r *Result) Dropped() []string {
	var names []string
	seen := make(map[string]bool)
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError && !seen[d.Service] {
			seen[d.Service] = true
			names = append(names, d.Service)
		}
	}
	return names
}
