package compose

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a compose file with every section kept in declaration order.
type Document struct {
	Name     string
	Version  string
	Services []ServiceNode
	Volumes  []Resource
	Networks []Resource
	Secrets  []Resource
	Configs  []Resource
}

// ServiceNode is an undecoded service entry. The node is a private copy with
// aliases and merge keys already resolved, so callers may rewrite it freely.
type ServiceNode struct {
	Name string
	Node *yaml.Node
}

// Resource is a top-level volume, network, secret or config declaration.
type Resource struct {
	Name       string            `yaml:"-"`
	Driver     string            `yaml:"driver"`
	External   External          `yaml:"external"`
	DriverOpts map[string]string `yaml:"driver_opts"`
	File       string            `yaml:"file"`
}

// VolumeNames returns the set of declared top-level volume names.
func (d *Document) VolumeNames() map[string]bool {
	names := make(map[string]bool, len(d.Volumes))
	for _, v := range d.Volumes {
		names[v.Name] = true
	}
	return names
}

// Load parses a compose document. It fails with *SyntaxError when the input
// is not YAML and with *ParseError when the top-level layout is wrong.
// Individual services are not decoded here; see DecodeService.
func Load(input []byte) (*Document, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return nil, NewParseError("", "compose document is empty", ErrEmptyInput)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(input, &root); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	top := &root
	if top.Kind == 0 {
		return nil, NewParseError("", "compose document is empty", ErrEmptyInput)
	}
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, NewParseError("", "compose document is empty", ErrEmptyInput)
		}
		top = top.Content[0]
	}
	top = resolve(top)
	if top.Kind != yaml.MappingNode {
		return nil, NewParseError("", "top level must be a mapping", ErrInvalidShape)
	}

	doc := &Document{}
	var servicesNode *yaml.Node

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		switch key {
		case "name":
			doc.Name = val.Value
		case "version":
			doc.Version = val.Value
		case "services":
			servicesNode = val
		case "volumes":
			res, err := loadResources(key, val)
			if err != nil {
				return nil, err
			}
			doc.Volumes = res
		case "networks":
			res, err := loadResources(key, val)
			if err != nil {
				return nil, err
			}
			doc.Networks = res
		case "secrets":
			res, err := loadResources(key, val)
			if err != nil {
				return nil, err
			}
			doc.Secrets = res
		case "configs":
			res, err := loadResources(key, val)
			if err != nil {
				return nil, err
			}
			doc.Configs = res
		}
	}

	if servicesNode == nil || isNull(servicesNode) {
		return nil, NewParseError("services", "missing services section", ErrNoServices)
	}
	if servicesNode.Kind != yaml.MappingNode {
		return nil, NewParseError("services", "must be a mapping of service names to service definitions", ErrInvalidShape)
	}
	if len(servicesNode.Content) == 0 {
		return nil, NewParseError("services", "no services defined", ErrNoServices)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(servicesNode.Content); i += 2 {
		name, val := servicesNode.Content[i].Value, servicesNode.Content[i+1]
		field := "services." + name
		if seen[name] {
			return nil, NewParseError(field, "service declared more than once", ErrDuplicateService)
		}
		seen[name] = true
		if val.Kind != yaml.MappingNode {
			return nil, NewParseError(field, "service definition must be a mapping", ErrInvalidShape)
		}
		doc.Services = append(doc.Services, ServiceNode{Name: name, Node: val})
	}

	return doc, nil
}

func loadResources(section string, node *yaml.Node) ([]Resource, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, NewParseError(section, "must be a mapping", ErrInvalidShape)
	}
	var out []Resource
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, val := node.Content[i].Value, node.Content[i+1]
		r := Resource{}
		if !isNull(val) {
			if err := val.Decode(&r); err != nil {
				return nil, NewParseError(section+"."+name, err.Error(), ErrInvalidShape)
			}
		}
		r.Name = name
		out = append(out, r)
	}
	return out, nil
}

// resolve returns a deep copy of n with aliases followed and "<<" merge keys
// expanded. Keys set explicitly in a mapping win over merged ones.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	out := *n
	out.Anchor = ""
	out.Content = nil

	switch n.Kind {
	case yaml.MappingNode:
		var merged []*yaml.Node
		var own []*yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.ShortTag() == "!!merge" {
				merged = append(merged, mergeSources(val)...)
				continue
			}
			own = append(own, resolve(key), resolve(val))
		}
		out.Content = overlay(merged, own)
	default:
		for _, c := range n.Content {
			out.Content = append(out.Content, resolve(c))
		}
	}
	return &out
}

// mergeSources flattens the value of a merge key into key/value pairs.
// Earlier sources win when a sequence of maps is merged.
func mergeSources(val *yaml.Node) []*yaml.Node {
	val = resolve(val)
	switch val.Kind {
	case yaml.MappingNode:
		return val.Content
	case yaml.SequenceNode:
		var pairs []*yaml.Node
		for i := len(val.Content) - 1; i >= 0; i-- {
			if m := val.Content[i]; m.Kind == yaml.MappingNode {
				pairs = overlay(pairs, m.Content)
			}
		}
		return pairs
	}
	return nil
}

// overlay applies top's pairs over base, keeping base's key order and
// appending new keys.
func overlay(base, top []*yaml.Node) []*yaml.Node {
	if len(base) == 0 {
		return top
	}
	out := make([]*yaml.Node, len(base))
	copy(out, base)
	index := make(map[string]int, len(out)/2)
	for i := 0; i+1 < len(out); i += 2 {
		index[out[i].Value] = i
	}
	for i := 0; i+1 < len(top); i += 2 {
		if at, ok := index[top[i].Value]; ok {
			out[at+1] = top[i+1]
			continue
		}
		index[top[i].Value] = len(out)
		out = append(out, top[i], top[i+1])
	}
	return out
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func scalarString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}
