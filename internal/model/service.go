package model

import (
	"encoding/json"
	"fmt"
)

// ServiceData is implemented by every service record variant. The set is
// closed: only types in this package satisfy it.
type ServiceData interface {
	serviceData()
}

// ServiceRecord is one entry of the output services array.
type ServiceRecord struct {
	Type ServiceKind
	Data ServiceData
}

// MarshalJSON emits {"type": ..., "data": ...}, rejecting a variant that
// does not belong to the record's kind.
func (r ServiceRecord) MarshalJSON() ([]byte, error) {
	var ok bool
	switch r.Data.(type) {
	case *AppService:
		ok = r.Type == KindApp || r.Type == KindCustom
	case *ProxyService:
		ok = r.Type == KindNginx || r.Type == KindTraefik
	case *MySQLService:
		ok = r.Type == KindMySQL
	case *PostgresService:
		ok = r.Type == KindPostgreSQL
	case *MongoService:
		ok = r.Type == KindMongoDB
	case *RedisService:
		ok = r.Type == KindRedis
	default:
		return nil, fmt.Errorf("service record of type %q has unsupported data %T", r.Type, r.Data)
	}
	if !ok {
		return nil, fmt.Errorf("service record of type %q cannot carry %T", r.Type, r.Data)
	}
	return json.Marshal(struct {
		Type ServiceKind `json:"type"`
		Data ServiceData `json:"data"`
	}{r.Type, r.Data})
}

// Name returns the service name carried by the record's data.
func (r ServiceRecord) Name() string {
	switch d := r.Data.(type) {
	case *AppService:
		return d.ServiceName
	case *ProxyService:
		return d.ServiceName
	case *MySQLService:
		return d.ServiceName
	case *PostgresService:
		return d.ServiceName
	case *MongoService:
		return d.ServiceName
	case *RedisService:
		return d.ServiceName
	}
	return ""
}

// Source tells EasyPanel where the service image comes from.
type Source struct {
	Type       string            `json:"type"` // image or dockerfile
	Image      string            `json:"image,omitempty"`
	Dockerfile string            `json:"dockerfile,omitempty"`
	Context    string            `json:"context,omitempty"`
	Args       map[string]string `json:"args,omitempty"`
}

type HealthCheck struct {
	Test        any    `json:"test"`
	Interval    string `json:"interval"`
	Timeout     string `json:"timeout"`
	Retries     int    `json:"retries"`
	StartPeriod string `json:"startPeriod"`
}

type ResourceSpec struct {
	CPUs   string `json:"cpus"`
	Memory string `json:"memory"`
}

type Resources struct {
	Limits       ResourceSpec `json:"limits"`
	Reservations ResourceSpec `json:"reservations"`
}

type Logging struct {
	Driver  string            `json:"driver"`
	Options map[string]string `json:"options"`
}

// AppService is the generic application shape, also used for custom.
type AppService struct {
	ProjectName string            `json:"projectName"`
	ServiceName string            `json:"serviceName"`
	Source      *Source           `json:"source,omitempty"`
	Ports       []PortMapping     `json:"ports,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Volumes     []VolumeMount     `json:"volumes,omitempty"`
	Command     any               `json:"command,omitempty"`
	Entrypoint  any               `json:"entrypoint,omitempty"`
	Restart     string            `json:"restart,omitempty"`
	DependsOn   []string          `json:"dependsOn,omitempty"`
	HealthCheck *HealthCheck      `json:"healthCheck,omitempty"`
	Resources   *Resources        `json:"resources,omitempty"`
	Logging     *Logging          `json:"logging,omitempty"`
	Networks    []string          `json:"networks,omitempty"`
}

// ProxyService is the nginx/traefik shape.
type ProxyService struct {
	ProjectName string            `json:"projectName"`
	ServiceName string            `json:"serviceName"`
	Source      *Source           `json:"source,omitempty"`
	Ports       []PortMapping     `json:"ports,omitempty"`
	Volumes     []VolumeMount     `json:"volumes,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Command     any               `json:"command,omitempty"`
}

// DatabaseBase holds the fields every database variant shares.
type DatabaseBase struct {
	ProjectName string        `json:"projectName"`
	ServiceName string        `json:"serviceName"`
	Image       string        `json:"image,omitempty"`
	Ports       []PortMapping `json:"ports,omitempty"`
	Volumes     []VolumeMount `json:"volumes,omitempty"`
	Restart     string        `json:"restart,omitempty"`
}

type MySQLService struct {
	DatabaseBase
	Database     string `json:"database,omitempty"`
	User         string `json:"user,omitempty"`
	Password     string `json:"password,omitempty"`
	RootPassword string `json:"rootPassword,omitempty"`
}

type PostgresService struct {
	DatabaseBase
	Database string `json:"database,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
}

type MongoService struct {
	DatabaseBase
	Database     string `json:"database,omitempty"`
	User         string `json:"user,omitempty"`
	Password     string `json:"password,omitempty"`
	RootPassword string `json:"rootPassword,omitempty"`
}

type RedisService struct {
	DatabaseBase
	Password string `json:"password,omitempty"`
}

func (*AppService) serviceData()      {}
func (*ProxyService) serviceData()    {}
func (*MySQLService) serviceData()    {}
func (*PostgresService) serviceData() {}
func (*MongoService) serviceData()    {}
func (*RedisService) serviceData()    {}
