package wizard

import (
	"bytes"
	"sort"
	"text/template"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Input       string
	Output      string
	ProjectName string

	Template bool
	EnvFiles []string

	IncludeNetworks       bool
	IncludeVolumes        bool
	SubstituteEnvironment bool

	Pretty   bool
	Strict   bool
	Validate bool

	TypeOverrides map[string]string
}

// TypeOverride is one service:type pair rendered into the config.
type TypeOverride struct {
	Service string
	Type    string
}

const configTemplate = `# compose2easypanel configuration
# Flags passed to "compose2easypanel convert" override these values.

input: {{ quote .Input }}
output: {{ quote .Output }}
{{- if .ProjectName }}
project_name: {{ quote .ProjectName }}
{{- end }}
{{- if .Template }}
template: true
{{- end }}
{{- if .EnvFiles }}

env_files:
{{- range .EnvFiles }}
  - {{ quote . }}
{{- end }}
{{- end }}

include_networks: {{ .IncludeNetworks }}
include_volumes: {{ .IncludeVolumes }}
substitute_environment: {{ .SubstituteEnvironment }}

pretty: {{ .Pretty }}
strict: {{ .Strict }}
validate: {{ .Validate }}
{{- if .Overrides }}

# Force a service type: app, mysql, postgresql, mongodb, redis, nginx, traefik, custom
type_overrides:
{{- range .Overrides }}
  {{ .Service }}: {{ .Type }}
{{- end }}
{{- end }}
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.Input == "" {
		answers.Input = "docker-compose.yml"
	}
	if answers.Output == "" {
		answers.Output = "schema.json"
	}

	tmpl, err := template.New("config").Funcs(template.FuncMap{"quote": quote}).Parse(configTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		WizardAnswers
		Overrides []TypeOverride
	}{answers, sortedOverrides(answers.TypeOverrides)}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func sortedOverrides(m map[string]string) []TypeOverride {
	out := make([]TypeOverride, 0, len(m))
	for service, kind := range m {
		out = append(out, TypeOverride{Service: service, Type: kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
