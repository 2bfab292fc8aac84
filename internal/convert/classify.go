package convert

import (
	"strings"

	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
)

// ServiceTypeVar is the environment key a compose file can set on a service
// to pick its kind explicitly.
const ServiceTypeVar = "EASYPANEL_SERVICE_TYPE"

type imageRule struct {
	pattern string
	kind    model.ServiceKind
}

// imageRules is evaluated top to bottom; the first substring hit wins.
var imageRules = []imageRule{
	{"mysql", model.KindMySQL},
	{"mariadb", model.KindMySQL},
	{"percona", model.KindMySQL},
	{"postgres", model.KindPostgreSQL},
	{"mongo", model.KindMongoDB},
	{"redis", model.KindRedis},
	{"nginx", model.KindNginx},
	{"caddy", model.KindNginx},
	{"traefik", model.KindTraefik},
}

// Classify picks the kind for svc. A valid override wins, matched without
// regard to case, then a valid EASYPANEL_SERVICE_TYPE entry in the service
// environment, then the image table. Unknown override values are ignored.
// Everything else, build-only services included, is an app.
func Classify(svc *compose.Service, override model.ServiceKind) model.ServiceKind {
	if kind, ok := model.ParseServiceKind(string(override)); ok {
		return kind
	}
	if v, ok := svc.Environment.Lookup(ServiceTypeVar); ok {
		if kind, ok := model.ParseServiceKind(v); ok {
			return kind
		}
	}
	return KindFromImage(svc.Image)
}

// KindFromImage matches the repository basename of image against the rule
// table.
func KindFromImage(image string) model.ServiceKind {
	base := imageBase(image)
	if base == "" {
		return model.KindApp
	}
	for _, r := range imageRules {
		if strings.Contains(base, r.pattern) {
			return r.kind
		}
	}
	return model.KindApp
}

// imageBase strips digest, registry, namespace and tag:
// "ghcr.io/acme/Postgres:15@sha256:..." -> "postgres".
func imageBase(image string) string {
	s := strings.ToLower(strings.TrimSpace(image))
	if i := strings.Index(s, "@"); i != -1 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i != -1 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i != -1 {
		s = s[:i]
	}
	return s
}
