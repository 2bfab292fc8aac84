package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripJinja2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"host ip in port",
			"{{ docker_services_tailscale_ip }}:7200:8080",
			"PLACEHOLDER:7200:8080",
		},
		{
			"several expressions",
			"{{ var1 }} and {{ var2 }}",
			"PLACEHOLDER and PLACEHOLDER",
		},
		{
			"plain text",
			"no jinja here",
			"no jinja here",
		},
		{
			"statement lines",
			"services:\n{% if enable_web %}\n  web:\n    image: nginx\n{% endif %}\n",
			"services:\n  web:\n    image: nginx\n",
		},
		{
			"comment",
			"image: {# pinned #}redis:7",
			"image: redis:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripJinja2(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}
