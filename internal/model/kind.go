package model

import "strings"

// ServiceKind tags the EasyPanel schema shape a service is emitted as.
type ServiceKind string

const (
	KindApp        ServiceKind = "app"
	KindMySQL      ServiceKind = "mysql"
	KindPostgreSQL ServiceKind = "postgresql"
	KindMongoDB    ServiceKind = "mongodb"
	KindRedis      ServiceKind = "redis"
	KindNginx      ServiceKind = "nginx"
	KindTraefik    ServiceKind = "traefik"
	KindCustom     ServiceKind = "custom"
)

// Kinds lists every ServiceKind in a fixed order.
var Kinds = []ServiceKind{
	KindApp,
	KindMySQL,
	KindPostgreSQL,
	KindMongoDB,
	KindRedis,
	KindNginx,
	KindTraefik,
	KindCustom,
}

// ParseServiceKind matches s against the known kinds, ignoring case and
// surrounding whitespace.
func ParseServiceKind(s string) (ServiceKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// IsDatabase reports whether records of this kind carry credential fields.
func (k ServiceKind) IsDatabase() bool {
	switch k {
	case KindMySQL, KindPostgreSQL, KindMongoDB, KindRedis:
		return true
	}
	return false
}
