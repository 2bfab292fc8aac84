package model

// SchemaVersion is the literal written to every output document.
const SchemaVersion = "2.0"

// SchemaDocument is the root of an EasyPanel schema import.
type SchemaDocument struct {
	Version     string          `json:"version"`
	ProjectName string          `json:"projectName"`
	Services    []ServiceRecord `json:"services"`
	Volumes     []VolumeRecord  `json:"volumes"`
	Networks    []NetworkRecord `json:"networks"`
	Secrets     []FileRecord    `json:"secrets,omitempty"`
	Configs     []FileRecord    `json:"configs,omitempty"`
}

// NewSchemaDocument creates a document with empty, non-nil collections so
// they serialize as [] rather than null.
func NewSchemaDocument(projectName string) *SchemaDocument {
	return &SchemaDocument{
		Version:     SchemaVersion,
		ProjectName: projectName,
		Services:    []ServiceRecord{},
		Volumes:     []VolumeRecord{},
		Networks:    []NetworkRecord{},
	}
}

// ServiceNames returns service names in output order.
func (d *SchemaDocument) ServiceNames() []string {
	names := make([]string, len(d.Services))
	for i, s := range d.Services {
		names[i] = s.Name()
	}
	return names
}

// VolumeRecord is a top-level named volume.
type VolumeRecord struct {
	Name       string            `json:"name"`
	Driver     string            `json:"driver"`
	External   bool              `json:"external"`
	DriverOpts map[string]string `json:"driver_opts"`
}

// NetworkRecord is a top-level network.
type NetworkRecord struct {
	Name       string            `json:"name"`
	Driver     string            `json:"driver"`
	External   bool              `json:"external"`
	DriverOpts map[string]string `json:"driver_opts"`
}

// FileRecord is a top-level secret or config.
type FileRecord struct {
	Name     string `json:"name"`
	External bool   `json:"external"`
	File     string `json:"file,omitempty"`
}
