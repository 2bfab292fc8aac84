package compose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeepsDeclarationOrder(t *testing.T) {
	src := `
name: shop
version: "3.8"
services:
  web:
    image: nginx
  api:
    build: .
  db:
    image: postgres
volumes:
  pgdata:
  uploads:
    driver: local
    driver_opts:
      type: nfs
networks:
  front:
  back:
    external: true
secrets:
  token:
    file: ./token.txt
configs:
  app:
    external:
      name: shared-app
`
	doc, err := Load([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "shop", doc.Name)
	assert.Equal(t, "3.8", doc.Version)

	var names []string
	for _, s := range doc.Services {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"web", "api", "db"}, names)

	assert.Equal(t, []Resource{
		{Name: "pgdata"},
		{Name: "uploads", Driver: "local", DriverOpts: map[string]string{"type": "nfs"}},
	}, doc.Volumes)
	assert.Equal(t, []Resource{{Name: "front"}, {Name: "back", External: true}}, doc.Networks)
	assert.Equal(t, []Resource{{Name: "token", File: "./token.txt"}}, doc.Secrets)
	assert.Equal(t, []Resource{{Name: "app", External: true}}, doc.Configs)
	assert.Equal(t, map[string]bool{"pgdata": true, "uploads": true}, doc.VolumeNames())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  error
		field string
	}{
		{"empty", "", ErrEmptyInput, ""},
		{"whitespace", "  \n\t\n", ErrEmptyInput, ""},
		{"comment only", "# nothing here\n", ErrEmptyInput, ""},
		{"scalar", "hello", ErrInvalidShape, ""},
		{"list", "- web\n- db\n", ErrInvalidShape, ""},
		{"missing services", "version: '3'\n", ErrNoServices, "services"},
		{"null services", "services:\n", ErrNoServices, "services"},
		{"empty services", "services: {}\n", ErrNoServices, "services"},
		{"services list", "services:\n  - web\n", ErrInvalidShape, "services"},
		{"service scalar", "services:\n  web: nginx\n", ErrInvalidShape, "services.web"},
		{"duplicate", "services:\n  web:\n    image: a\n  web:\n    image: b\n", ErrDuplicateService, "services.web"},
		{"volumes list", "services:\n  web:\n    image: a\nvolumes: [data]\n", ErrInvalidShape, "volumes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load([]byte("services:\n  web: [unclosed\n"))
	require.Error(t, err)

	var serr *SyntaxError
	assert.True(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "invalid YAML syntax")
}

func TestLoadResolvesAnchorsAndMerges(t *testing.T) {
	src := `
x-base: &base
  image: acme/base
  restart: always
x-logging: &logging
  restart: on-failure
  logging:
    driver: syslog
services:
  a:
    <<: [*base, *logging]
  b:
    <<: *base
    restart: "no"
  c: *base
`
	doc, err := Load([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Services, 3)

	a, err := DecodeService(doc.Services[0])
	require.NoError(t, err)
	assert.Equal(t, "acme/base", a.Image)
	assert.Equal(t, "always", a.Restart)
	require.NotNil(t, a.Logging)
	assert.Equal(t, "syslog", a.Logging.Driver)

	b, err := DecodeService(doc.Services[1])
	require.NoError(t, err)
	assert.Equal(t, "acme/base", b.Image)
	assert.Equal(t, "no", b.Restart)

	c, err := DecodeService(doc.Services[2])
	require.NoError(t, err)
	assert.Equal(t, "always", c.Restart)
}

func TestLoadServiceNodesAreIndependent(t *testing.T) {
	src := `
x-env: &env
  environment:
    URL: original
services:
  a:
    <<: *env
    image: x
  b:
    <<: *env
    image: y
`
	doc, err := Load([]byte(src))
	require.NoError(t, err)

	node := doc.Services[0].Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "environment" {
			node.Content[i+1].Content[1].Value = "changed"
		}
	}

	b, err := DecodeService(doc.Services[1])
	require.NoError(t, err)
	v, ok := b.Environment.Lookup("URL")
	assert.True(t, ok)
	assert.Equal(t, "original", v)
}
