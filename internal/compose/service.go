package compose

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Service is a decoded compose service. Only the keys the converter maps are
// kept; everything else in the source is ignored.
type Service struct {
	Name          string
	Image         string
	ContainerName string
	Build         *Build
	Ports         []PortEntry
	Environment   Environment
	Volumes       []VolumeEntry
	DependsOn     NameList
	Networks      NameList
	Restart       string
	Command       *Command
	Entrypoint    *Command
	Healthcheck   *Healthcheck
	Deploy        *Deploy
	Logging       *Logging
}

// Build is the build section in either its short (context path) or long form.
type Build struct {
	Context    string      `yaml:"context"`
	Dockerfile string      `yaml:"dockerfile"`
	Args       Environment `yaml:"args"`
}

func (b *Build) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		ctx, err := scalarString(value)
		b.Context = ctx
		return err
	}
	type plain Build
	return value.Decode((*plain)(b))
}

// PortEntry is one item of a service's ports list. Short is set for the
// string/integer syntax, the remaining fields for the long syntax.
type PortEntry struct {
	Short     string
	Long      bool
	Target    string
	Published string
	Protocol  string
	HostIP    string
}

func (p *PortEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s, err := scalarString(value)
		p.Short = strings.TrimSpace(s)
		return err
	}
	var long struct {
		Target    string `yaml:"target"`
		Published string `yaml:"published"`
		Protocol  string `yaml:"protocol"`
		HostIP    string `yaml:"host_ip"`
		Host      string `yaml:"host"`
		Container string `yaml:"container"`
	}
	if err := value.Decode(&long); err != nil {
		return err
	}
	p.Long = true
	p.Target = firstNonEmpty(long.Target, long.Container)
	p.Published = firstNonEmpty(long.Published, long.Host)
	p.Protocol = long.Protocol
	p.HostIP = long.HostIP
	return nil
}

// VolumeEntry is one item of a service's volumes list.
type VolumeEntry struct {
	Short    string
	Long     bool
	Type     string
	Source   string
	Target   string
	ReadOnly bool
}

func (v *VolumeEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s, err := scalarString(value)
		v.Short = strings.TrimSpace(s)
		return err
	}
	var long struct {
		Type     string `yaml:"type"`
		Source   string `yaml:"source"`
		Target   string `yaml:"target"`
		ReadOnly bool   `yaml:"read_only"`
	}
	if err := value.Decode(&long); err != nil {
		return err
	}
	v.Long = true
	v.Type = long.Type
	v.Source = long.Source
	v.Target = long.Target
	v.ReadOnly = long.ReadOnly
	return nil
}

// EnvVar is a single environment entry. Set is false for bare keys
// ("KEY" in list form or "KEY:" in mapping form).
type EnvVar struct {
	Key   string
	Value string
	Set   bool
}

// Environment keeps environment entries in declaration order, whichever of
// the mapping or "KEY=VALUE" list syntaxes the file used.
type Environment []EnvVar

func (e *Environment) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			k, v := value.Content[i], value.Content[i+1]
			s, err := scalarString(v)
			if err != nil {
				return err
			}
			*e = append(*e, EnvVar{Key: k.Value, Value: s, Set: !isNull(v)})
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			key, val, found := strings.Cut(s, "=")
			*e = append(*e, EnvVar{Key: key, Value: val, Set: found})
		}
	case yaml.ScalarNode:
		if !isNull(value) {
			return &yaml.TypeError{Errors: []string{"environment must be a mapping or a list"}}
		}
	}
	return nil
}

// Lookup returns the value of the last entry named key.
func (e Environment) Lookup(key string) (string, bool) {
	for i := len(e) - 1; i >= 0; i-- {
		if e[i].Key == key {
			return e[i].Value, e[i].Set
		}
	}
	return "", false
}

// NameList is a list of names given either as a sequence or as the keys of
// a mapping (depends_on with conditions, networks with per-service options).
type NameList []string

func (n *NameList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		for _, item := range value.Content {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			*n = append(*n, s)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			*n = append(*n, value.Content[i].Value)
		}
	case yaml.ScalarNode:
		if !isNull(value) {
			s, _ := scalarString(value)
			*n = append(*n, s)
		}
	}
	return nil
}

// Command holds command/entrypoint in its original shape: a shell string
// or an exec list.
type Command struct {
	Shell string
	Exec  []string
}

func (c *Command) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&c.Exec)
	}
	s, err := scalarString(value)
	c.Shell = s
	return err
}

// Value returns the command as a string or a []string.
func (c *Command) Value() any {
	if c == nil {
		return nil
	}
	if c.Exec != nil {
		return c.Exec
	}
	return c.Shell
}

type Healthcheck struct {
	Test        *Command `yaml:"test"`
	Interval    string   `yaml:"interval"`
	Timeout     string   `yaml:"timeout"`
	Retries     *int     `yaml:"retries"`
	StartPeriod string   `yaml:"start_period"`
	Disable     bool     `yaml:"disable"`
}

type Deploy struct {
	Resources struct {
		Limits       *ResourceSpec `yaml:"limits"`
		Reservations *ResourceSpec `yaml:"reservations"`
	} `yaml:"resources"`
}

type ResourceSpec struct {
	CPUs   string `yaml:"cpus"`
	Memory string `yaml:"memory"`
}

type Logging struct {
	Driver  string            `yaml:"driver"`
	Options map[string]string `yaml:"options"`
}

// External accepts both `external: true` and the legacy
// `external: {name: ...}` form.
type External bool

func (x *External) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		*x = true
		return nil
	}
	var b bool
	if err := value.Decode(&b); err != nil {
		return err
	}
	*x = External(b)
	return nil
}

// DecodeService decodes one service node. A key holding a value of the
// wrong shape yields a *FieldError naming that key.
func DecodeService(sn ServiceNode) (*Service, error) {
	svc := &Service{Name: sn.Name}
	node := sn.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if isNull(val) {
			continue
		}
		target := svc.field(key)
		if target == nil {
			continue
		}
		if err := val.Decode(target); err != nil {
			return nil, &FieldError{Field: key, Err: err}
		}
	}
	return svc, nil
}

func (s *Service) field(key string) any {
	switch key {
	case "image":
		return &s.Image
	case "container_name":
		return &s.ContainerName
	case "build":
		s.Build = &Build{}
		return s.Build
	case "ports":
		return &s.Ports
	case "environment":
		return &s.Environment
	case "volumes":
		return &s.Volumes
	case "depends_on":
		return &s.DependsOn
	case "networks":
		return &s.Networks
	case "restart":
		return &s.Restart
	case "command":
		s.Command = &Command{}
		return s.Command
	case "entrypoint":
		s.Entrypoint = &Command{}
		return s.Entrypoint
	case "healthcheck":
		s.Healthcheck = &Healthcheck{}
		return s.Healthcheck
	case "deploy":
		s.Deploy = &Deploy{}
		return s.Deploy
	case "logging":
		s.Logging = &Logging{}
		return s.Logging
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
