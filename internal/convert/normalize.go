package convert

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
)

// normalizer rewrites one decoded service into the target vocabulary,
// collecting every field error rather than stopping at the first.
type normalizer struct {
	svc         *compose.Service
	projectName string
	volumeNames map[string]bool
	ambient     map[string]string
	errs        []*ValidationError
}

func (n *normalizer) fail(field string, sentinel error, format string, args ...any) {
	n.errs = append(n.errs, &ValidationError{
		Service: n.svc.Name,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	})
}

func (n *normalizer) ports() []model.PortMapping {
	var out []model.PortMapping
	for i, p := range n.svc.Ports {
		if !p.Long {
			pm, err := model.ParsePortMapping(p.Short)
			if err != nil {
				n.fail("ports", ErrInvalidPort, "entry %d (%q): %v", i, p.Short, err)
				continue
			}
			out = append(out, pm)
			continue
		}

		target, err := model.ParsePort(p.Target)
		if err != nil {
			n.fail("ports", ErrInvalidPort, "entry %d target: %v", i, err)
			continue
		}
		published := target
		if p.Published != "" {
			if published, err = model.ParsePort(p.Published); err != nil {
				n.fail("ports", ErrInvalidPort, "entry %d published: %v", i, err)
				continue
			}
		}
		proto, err := model.ParseProtocol(p.Protocol)
		if err != nil {
			n.fail("ports", ErrInvalidPort, "entry %d: %v", i, err)
			continue
		}
		out = append(out, model.PortMapping{Published: published, Target: target, Protocol: proto})
	}
	return out
}

// environment flattens the service environment into a map. Bare keys take
// their value from the ambient variables, or become empty.
func (n *normalizer) environment() map[string]string {
	return n.envMap("environment", n.svc.Environment)
}

func (n *normalizer) envMap(field string, env compose.Environment) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for _, e := range env {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			n.fail(field, ErrInvalidEnvironment, "entry with empty variable name")
			continue
		}
		if !e.Set {
			out[key] = n.ambient[key]
			continue
		}
		out[key] = e.Value
	}
	return out
}

func (n *normalizer) volumes() []model.VolumeMount {
	var out []model.VolumeMount
	for i, v := range n.svc.Volumes {
		vm, err := n.volume(v)
		if err != nil {
			n.fail("volumes", ErrInvalidVolume, "entry %d: %v", i, err)
			continue
		}
		out = append(out, vm)
	}
	return out
}

func (n *normalizer) volume(v compose.VolumeEntry) (model.VolumeMount, error) {
	if v.Long {
		if v.Target == "" {
			return model.VolumeMount{}, fmt.Errorf("missing target")
		}
		vm := model.VolumeMount{ContainerPath: v.Target, ReadOnly: v.ReadOnly}
		switch v.Type {
		case "volume":
			vm.VolumeName = v.Source
		case "bind":
			vm.HostPath = v.Source
		case "tmpfs", "npipe", "image", "cluster":
		default:
			n.assignSource(&vm, v.Source)
		}
		return vm, nil
	}

	if v.Short == "" {
		return model.VolumeMount{}, fmt.Errorf("empty volume")
	}
	parts := strings.SplitN(v.Short, ":", 3)
	if len(parts) == 1 {
		return model.VolumeMount{ContainerPath: parts[0]}, nil
	}
	if parts[1] == "" {
		return model.VolumeMount{}, fmt.Errorf("%q has no container path", v.Short)
	}
	vm := model.VolumeMount{ContainerPath: parts[1]}
	if len(parts) == 3 {
		vm.ReadOnly = hasMode(parts[2], "ro")
	}
	n.assignSource(&vm, parts[0])
	return vm, nil
}

// assignSource sets VolumeName when source names a declared top-level volume
// and looks like a name rather than a path; otherwise HostPath.
func (n *normalizer) assignSource(vm *model.VolumeMount, source string) {
	if source == "" {
		return
	}
	if !isPathLike(source) && n.volumeNames[source] {
		vm.VolumeName = source
		return
	}
	vm.HostPath = source
}

func isPathLike(s string) bool {
	return strings.ContainsAny(s, `/\`) || strings.HasPrefix(s, ".") || strings.HasPrefix(s, "~")
}

func hasMode(modes, want string) bool {
	for _, m := range strings.Split(modes, ",") {
		if strings.TrimSpace(m) == want {
			return true
		}
	}
	return false
}

func (n *normalizer) source() *model.Source {
	if n.svc.Image != "" {
		return &model.Source{Type: "image", Image: n.svc.Image}
	}
	if b := n.svc.Build; b != nil {
		src := &model.Source{
			Type:       "dockerfile",
			Dockerfile: b.Dockerfile,
			Context:    b.Context,
			Args:       n.envMap("build", b.Args),
		}
		if src.Dockerfile == "" {
			src.Dockerfile = "Dockerfile"
		}
		if src.Context == "" {
			src.Context = "."
		}
		return src
	}
	return nil
}

func (n *normalizer) healthCheck() *model.HealthCheck {
	hc := n.svc.Healthcheck
	if hc == nil || hc.Disable {
		return nil
	}
	out := &model.HealthCheck{
		Test:        hc.Test.Value(),
		Interval:    orDefault(hc.Interval, "30s"),
		Timeout:     orDefault(hc.Timeout, "10s"),
		Retries:     3,
		StartPeriod: orDefault(hc.StartPeriod, "0s"),
	}
	if out.Test == nil {
		out.Test = []string{}
	}
	if hc.Retries != nil {
		out.Retries = *hc.Retries
	}
	return out
}

func (n *normalizer) resources() *model.Resources {
	d := n.svc.Deploy
	if d == nil || (d.Resources.Limits == nil && d.Resources.Reservations == nil) {
		return nil
	}
	out := &model.Resources{}
	if l := d.Resources.Limits; l != nil {
		out.Limits = model.ResourceSpec{CPUs: l.CPUs, Memory: l.Memory}
	}
	if r := d.Resources.Reservations; r != nil {
		out.Reservations = model.ResourceSpec{CPUs: r.CPUs, Memory: r.Memory}
	}
	return out
}

func (n *normalizer) logging() *model.Logging {
	l := n.svc.Logging
	if l == nil {
		return nil
	}
	out := &model.Logging{Driver: orDefault(l.Driver, "json-file"), Options: l.Options}
	if out.Options == nil {
		out.Options = map[string]string{}
	}
	return out
}

// dependsOn drops conditions and keeps declaration order.
func (n *normalizer) dependsOn() []string {
	if len(n.svc.DependsOn) == 0 {
		return nil
	}
	return append([]string(nil), n.svc.DependsOn...)
}

func (n *normalizer) networks() []string {
	if len(n.svc.Networks) == 0 {
		return nil
	}
	return append([]string(nil), n.svc.Networks...)
}

func (n *normalizer) app() *model.AppService {
	app := &model.AppService{
		ProjectName: n.projectName,
		ServiceName: n.svc.Name,
		Source:      n.source(),
		Ports:       n.ports(),
		Environment: n.environment(),
		Volumes:     n.volumes(),
		Command:     n.svc.Command.Value(),
		Entrypoint:  n.svc.Entrypoint.Value(),
		Restart:     n.svc.Restart,
		DependsOn:   n.dependsOn(),
		HealthCheck: n.healthCheck(),
		Resources:   n.resources(),
		Logging:     n.logging(),
		Networks:    n.networks(),
	}
	if app.Source == nil {
		n.fail("image", ErrMissingSource, "service has neither image nor build")
	}
	return app
}

func (n *normalizer) proxy() *model.ProxyService {
	return &model.ProxyService{
		ProjectName: n.projectName,
		ServiceName: n.svc.Name,
		Source:      n.source(),
		Ports:       n.ports(),
		Volumes:     n.volumes(),
		Environment: n.environment(),
		Command:     n.svc.Command.Value(),
	}
}

// database builds a credential-carrying record. The generic environment is
// consumed by the credential table and not emitted.
func (n *normalizer) database(kind model.ServiceKind) (model.ServiceData, credentials) {
	base := model.DatabaseBase{
		ProjectName: n.projectName,
		ServiceName: n.svc.Name,
		Image:       n.svc.Image,
		Ports:       n.ports(),
		Volumes:     n.volumes(),
		Restart:     n.svc.Restart,
	}
	creds := extractCredentials(kind, n.environment())
	return databaseRecord(kind, base, creds), creds
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
