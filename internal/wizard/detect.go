package wizard

import (
	"os"
	"path/filepath"
	"sort"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	ComposeFiles  []string
	TemplateFiles []string // Jinja2 compose templates (*.j2)
	EnvFiles      []string // .env first, then *.env such as stack.env
}

// Finding is one detected file, labelled by what it will be used for.
type Finding struct {
	Kind string
	Path string
}

// Detector abstracts filesystem lookups for testing.
type Detector interface {
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

var composeNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

var templatePatterns = []string{
	"docker-compose*.j2",
	"compose*.j2",
	"templates/*compose*.j2",
}

var envPattern = "*.env"

// Detect scans the working directory for compose files, compose templates
// and dotenv files.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	for _, name := range composeNames {
		if info, err := d.Stat(name); err == nil && !info.IsDir() {
			result.ComposeFiles = append(result.ComposeFiles, name)
		}
	}

	seen := make(map[string]bool)
	for _, pattern := range templatePatterns {
		matches, err := d.Glob(pattern)
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				result.TemplateFiles = append(result.TemplateFiles, m)
			}
		}
	}

	if info, err := d.Stat(".env"); err == nil && !info.IsDir() {
		result.EnvFiles = append(result.EnvFiles, ".env")
	}
	if matches, err := d.Glob(envPattern); err == nil {
		sort.Strings(matches)
		for _, m := range matches {
			if m == ".env" {
				continue
			}
			if info, err := d.Stat(m); err == nil && !info.IsDir() {
				result.EnvFiles = append(result.EnvFiles, m)
			}
		}
	}

	return result
}

// DefaultInput returns the first detected compose file, falling back to a
// template and then to docker-compose.yml.
func (r DetectionResult) DefaultInput() (path string, template bool) {
	if len(r.ComposeFiles) > 0 {
		return r.ComposeFiles[0], false
	}
	if len(r.TemplateFiles) > 0 {
		return r.TemplateFiles[0], true
	}
	return "docker-compose.yml", false
}

// Findings lists every detected file in display order.
func (r DetectionResult) Findings() []Finding {
	var out []Finding
	for _, f := range r.ComposeFiles {
		out = append(out, Finding{Kind: "compose", Path: f})
	}
	for _, f := range r.TemplateFiles {
		out = append(out, Finding{Kind: "template", Path: f})
	}
	for _, f := range r.EnvFiles {
		out = append(out, Finding{Kind: "env file", Path: f})
	}
	return out
}
