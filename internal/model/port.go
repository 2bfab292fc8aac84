package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PortMapping represents a published port.
type PortMapping struct {
	Published int    `json:"published"`
	Target    int    `json:"target"`
	Protocol  string `json:"protocol"` // tcp or udp
}

// String returns the mapping in compose short syntax.
func (p PortMapping) String() string {
	s := fmt.Sprintf("%d:%d", p.Published, p.Target)
	if p.Protocol != "" && p.Protocol != "tcp" {
		s += "/" + p.Protocol
	}
	return s
}

// ParsePortMapping parses a Docker port string like "8080", "8080:80",
// "127.0.0.1:8080:80" or "8080:80/udp". The host IP is accepted and dropped.
func ParsePortMapping(s string) (PortMapping, error) {
	pm := PortMapping{Protocol: "tcp"}

	s = strings.TrimSpace(s)
	if rest, proto, ok := strings.Cut(s, "/"); ok {
		p, err := ParseProtocol(proto)
		if err != nil {
			return PortMapping{}, err
		}
		pm.Protocol = p
		s = rest
	}

	// [::1]:8080:80
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]:")
		if end == -1 {
			return PortMapping{}, fmt.Errorf("malformed host address in %q", s)
		}
		s = s[end+2:]
	}

	parts := strings.Split(s, ":")
	var published, target string
	switch len(parts) {
	case 1:
		published, target = parts[0], parts[0]
	case 2:
		published, target = parts[0], parts[1]
	case 3:
		published, target = parts[1], parts[2]
	default:
		return PortMapping{}, fmt.Errorf("too many ':' separators in %q", s)
	}

	var err error
	if pm.Published, err = ParsePort(published); err != nil {
		return PortMapping{}, fmt.Errorf("published port: %w", err)
	}
	if pm.Target, err = ParsePort(target); err != nil {
		return PortMapping{}, fmt.Errorf("target port: %w", err)
	}
	return pm, nil
}

// ParsePort parses a single port number in [1, 65535].
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "-") {
		return 0, fmt.Errorf("port ranges are not supported: %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("%d is out of range 1-65535", n)
	}
	return n, nil
}

// ParseProtocol normalizes a port protocol; empty means tcp.
func ParseProtocol(s string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(s)); p {
	case "", "tcp":
		return "tcp", nil
	case "udp":
		return "udp", nil
	default:
		return "", fmt.Errorf("unsupported protocol %q", s)
	}
}
