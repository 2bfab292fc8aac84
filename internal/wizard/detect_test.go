package wizard

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockDetector implements Detector for testing.
type mockDetector struct {
	files map[string]bool
	dirs  map[string]bool
}

type fakeFileInfo struct {
	name  string
	isDir bool
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() interface{}   { return nil }

func (m *mockDetector) Stat(p string) (os.FileInfo, error) {
	if m.dirs[p] {
		return fakeFileInfo{name: p, isDir: true}, nil
	}
	if m.files[p] {
		return fakeFileInfo{name: p, isDir: false}, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockDetector) Glob(pattern string) ([]string, error) {
	var out []string
	for f := range m.files {
		if ok, _ := path.Match(pattern, f); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func TestDetectComposeFiles(t *testing.T) {
	d := &mockDetector{
		files: map[string]bool{"docker-compose.yml": true, "compose.yml": true},
	}
	result := Detect(d)
	assert.Equal(t, []string{"docker-compose.yml", "compose.yml"}, result.ComposeFiles)

	input, tmpl := result.DefaultInput()
	assert.Equal(t, "docker-compose.yml", input)
	assert.False(t, tmpl)
}

func TestDetectSkipsDirectories(t *testing.T) {
	d := &mockDetector{
		dirs: map[string]bool{"compose.yaml": true, ".env": true},
	}
	result := Detect(d)
	assert.Empty(t, result.ComposeFiles)
	assert.Empty(t, result.EnvFiles)
}

func TestDetectTemplates(t *testing.T) {
	d := &mockDetector{
		files: map[string]bool{
			"templates/docker-compose.yml.j2": true,
			"compose.prod.j2":                 true,
			"README.md":                       true,
		},
	}
	result := Detect(d)
	assert.Equal(t, []string{"compose.prod.j2", "templates/docker-compose.yml.j2"}, result.TemplateFiles)

	input, tmpl := result.DefaultInput()
	assert.Equal(t, "compose.prod.j2", input)
	assert.True(t, tmpl)
}

func TestDetectEnvFile(t *testing.T) {
	d := &mockDetector{files: map[string]bool{".env": true}}
	result := Detect(d)
	assert.Equal(t, []string{".env"}, result.EnvFiles)
}

func TestDetectNamedEnvFiles(t *testing.T) {
	d := &mockDetector{
		files: map[string]bool{".env": true, "stack.env": true, "app.env": true},
		dirs:  map[string]bool{"conf.env": true},
	}
	result := Detect(d)
	assert.Equal(t, []string{".env", "app.env", "stack.env"}, result.EnvFiles)
}

func TestDetectionFindings(t *testing.T) {
	result := DetectionResult{
		ComposeFiles:  []string{"compose.yml"},
		TemplateFiles: []string{"compose.yml.j2"},
		EnvFiles:      []string{"stack.env"},
	}
	assert.Equal(t, []Finding{
		{Kind: "compose", Path: "compose.yml"},
		{Kind: "template", Path: "compose.yml.j2"},
		{Kind: "env file", Path: "stack.env"},
	}, result.Findings())
	assert.Empty(t, DetectionResult{}.Findings())
}

func TestDetectNothing(t *testing.T) {
	result := Detect(&mockDetector{})
	assert.Empty(t, result.ComposeFiles)
	assert.Empty(t, result.TemplateFiles)
	assert.Empty(t, result.EnvFiles)

	input, tmpl := result.DefaultInput()
	assert.Equal(t, "docker-compose.yml", input)
	assert.False(t, tmpl)
}
