package convert

import (
	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
)

// assemble builds the output root. Services keep their input order.
func assemble(projectName string, services []model.ServiceRecord, doc *compose.Document, opts Options) *model.SchemaDocument {
	out := model.NewSchemaDocument(projectName)
	out.Services = append(out.Services, services...)

	if opts.IncludeVolumes {
		for _, v := range doc.Volumes {
			out.Volumes = append(out.Volumes, model.VolumeRecord{
				Name:       v.Name,
				Driver:     orDefault(v.Driver, "local"),
				External:   bool(v.External),
				DriverOpts: driverOpts(v.DriverOpts),
			})
		}
	}

	if opts.IncludeNetworks {
		for _, n := range doc.Networks {
			out.Networks = append(out.Networks, model.NetworkRecord{
				Name:       n.Name,
				Driver:     orDefault(n.Driver, "bridge"),
				External:   bool(n.External),
				DriverOpts: driverOpts(n.DriverOpts),
			})
		}
	}

	for _, s := range doc.Secrets {
		out.Secrets = append(out.Secrets, fileRecord(s))
	}
	for _, c := range doc.Configs {
		out.Configs = append(out.Configs, fileRecord(c))
	}

	return out
}

func fileRecord(r compose.Resource) model.FileRecord {
	return model.FileRecord{Name: r.Name, External: bool(r.External), File: r.File}
}

func driverOpts(opts map[string]string) map[string]string {
	if opts == nil {
		return map[string]string{}
	}
	return opts
}
