package model

// VolumeMount is a service volume. Exactly one of HostPath and VolumeName
// is set, except for anonymous volumes where both are empty.
type VolumeMount struct {
	HostPath      string `json:"hostPath,omitempty"`
	VolumeName    string `json:"volumeName,omitempty"`
	ContainerPath string `json:"containerPath"`
	ReadOnly      bool   `json:"readOnly"`
}
