package convert

import (
	"testing"

	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestKindFromImage(t *testing.T) {
	tests := []struct {
		image string
		want  model.ServiceKind
	}{
		{"mysql:8.0", model.KindMySQL},
		{"mariadb:11", model.KindMySQL},
		{"percona/percona-server:8.0", model.KindMySQL},
		{"postgres:15", model.KindPostgreSQL},
		{"bitnami/postgresql:16", model.KindPostgreSQL},
		{"ghcr.io/acme/Postgres:15@sha256:abcdef", model.KindPostgreSQL},
		{"mongo:7", model.KindMongoDB},
		{"redis:7-alpine", model.KindRedis},
		{"nginx:alpine", model.KindNginx},
		{"caddy:2", model.KindNginx},
		{"traefik:v3.0", model.KindTraefik},
		{"node:20", model.KindApp},
		{"registry.local:5000/team/api", model.KindApp},
		{"mysql-postgres-proxy", model.KindMySQL},
		{"acme/redis-commander-postgres", model.KindPostgreSQL},
		{"", model.KindApp},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromImage(tt.image))
		})
	}
}

func TestImageBase(t *testing.T) {
	assert.Equal(t, "postgres", imageBase("docker.io/library/postgres:15"))
	assert.Equal(t, "api", imageBase("registry.local:5000/team/api"))
	assert.Equal(t, "redis", imageBase("redis@sha256:0123"))
}

func TestClassifyPrecedence(t *testing.T) {
	env := func(v string) compose.Environment {
		return compose.Environment{{Key: ServiceTypeVar, Value: v, Set: true}}
	}

	tests := []struct {
		name     string
		svc      *compose.Service
		override model.ServiceKind
		want     model.ServiceKind
	}{
		{"image only", &compose.Service{Image: "postgres"}, "", model.KindPostgreSQL},
		{"build only", &compose.Service{Build: &compose.Build{Context: "."}}, "", model.KindApp},
		{"env sentinel", &compose.Service{Image: "acme/kv", Environment: env("Redis")}, "", model.KindRedis},
		{"invalid sentinel ignored", &compose.Service{Image: "mongo", Environment: env("oracle")}, "", model.KindMongoDB},
		{"override beats sentinel", &compose.Service{Image: "mongo", Environment: env("redis")}, model.KindCustom, model.KindCustom},
		{"override beats image", &compose.Service{Image: "nginx"}, model.KindApp, model.KindApp},
		{"mixed-case override", &compose.Service{Image: "acme/db"}, "Postgresql", model.KindPostgreSQL},
		{"unknown override ignored", &compose.Service{Image: "postgres:15"}, "bogus", model.KindPostgreSQL},
		{"unknown override falls to sentinel", &compose.Service{Image: "acme/kv", Environment: env("redis")}, "bogus", model.KindRedis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.svc, tt.override))
		})
	}
}
