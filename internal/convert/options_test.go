package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		explicit string
		compose  string
		want     string
	}{
		{"shop", "ignored", "shop"},
		{"", "My Shop.Prod", "my-shop-prod"},
		{"", "", DefaultProjectName},
		{"", "!!!", DefaultProjectName},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProjectName(tt.explicit, tt.compose), "explicit=%q compose=%q", tt.explicit, tt.compose)
	}
}

func TestResultDropped(t *testing.T) {
	res := &Result{Diagnostics: []Diagnostic{
		{Severity: SeverityWarning, Service: "db"},
		{Severity: SeverityError, Service: "web", Field: "ports"},
		{Severity: SeverityError, Service: "web", Field: "volumes"},
		{Severity: SeverityError, Service: "api"},
	}}
	assert.Equal(t, []string{"web", "api"}, res.Dropped())
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, "web.ports: bad", Diagnostic{Service: "web", Field: "ports", Message: "bad"}.String())
	assert.Equal(t, "web: gone", Diagnostic{Service: "web", Message: "gone"}.String())
}
