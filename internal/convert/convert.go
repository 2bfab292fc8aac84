// Package convert translates a compose document into an EasyPanel schema.
package convert

import (
	"errors"
	"fmt"

	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/ThomasCrouzet/compose2easypanel/internal/util"
	"github.com/sirupsen/logrus"
)

// Convert parses input and converts every service. Syntax and layout
// problems are fatal. Per-service validation errors abort the run in strict
// mode; otherwise the service is dropped and reported in Diagnostics.
func Convert(input []byte, projectName string, ambient map[string]string, opts Options) (*Result, error) {
	if opts.StripTemplates {
		input = []byte(util.StripJinja2(string(input)))
	}
	doc, err := compose.Load(input)
	if err != nil {
		return nil, err
	}
	return ConvertDocument(doc, projectName, ambient, opts)
}

// ConvertDocument converts an already loaded document. The document's
// service nodes are rewritten by substitution and must not be reused.
func ConvertDocument(doc *compose.Document, projectName string, ambient map[string]string, opts Options) (*Result, error) {
	if projectName == "" {
		projectName = DefaultProjectName
	}
	log := opts.logger()

	result := &Result{}
	policy := opts.policy(&result.Diagnostics)
	volumeNames := doc.VolumeNames()

	var records []model.ServiceRecord
	for _, sn := range doc.Services {
		rec, warnings, verrs := convertService(sn, projectName, volumeNames, ambient, opts, log)
		if len(verrs) > 0 {
			for _, verr := range verrs {
				if policy.handle(verr) {
					return nil, verr
				}
			}
			log.WithField("service", sn.Name).Warnf("dropping service after %d validation error(s)", len(verrs))
			continue
		}
		result.Diagnostics = append(result.Diagnostics, warnings...)
		records = append(records, rec)
	}

	result.Document = assemble(projectName, records, doc, opts)
	return result, nil
}

func convertService(sn compose.ServiceNode, projectName string, volumeNames map[string]bool, ambient map[string]string, opts Options, log logrus.FieldLogger) (model.ServiceRecord, []Diagnostic, []*ValidationError) {
	log = log.WithField("service", sn.Name)
	var warnings []Diagnostic

	if opts.SubstituteEnvironment {
		sub := newSubstituter(ambient)
		if err := sub.node(sn.Node); err != nil {
			return model.ServiceRecord{}, nil, []*ValidationError{substitutionError(sn.Name, err)}
		}
		for _, name := range sub.missing {
			log.Debugf("variable %s is not set, defaulting to a blank string", name)
			warnings = append(warnings, Diagnostic{
				Severity: SeverityWarning,
				Service:  sn.Name,
				Message:  fmt.Sprintf("variable %s is not set, defaulting to a blank string", name),
			})
		}
	} else {
		ambient = nil
	}

	svc, err := compose.DecodeService(sn)
	if err != nil {
		return model.ServiceRecord{}, nil, []*ValidationError{decodeError(sn.Name, err)}
	}

	override := opts.override(svc.Name)
	if _, ok := model.ParseServiceKind(string(override)); override != "" && !ok {
		log.Debugf("ignoring unknown type override %q", override)
	}
	kind := Classify(svc, override)
	log.WithFields(logrus.Fields{"image": svc.Image, "override": override}).Debugf("classified as %s", kind)

	n := &normalizer{
		svc:         svc,
		projectName: projectName,
		volumeNames: volumeNames,
		ambient:     ambient,
	}

	var data model.ServiceData
	switch {
	case kind.IsDatabase():
		var creds credentials
		data, creds = n.database(kind)
		if !creds.hasSecret() {
			warnings = append(warnings, Diagnostic{
				Severity: SeverityWarning,
				Service:  svc.Name,
				Field:    "environment",
				Message:  fmt.Sprintf("no password found for %s service; field omitted", kind),
				Err:      ErrMissingCredential,
			})
		}
		for _, src := range credentialTables[kind] {
			if _, ok := creds[src.field]; ok {
				log.Debugf("extracted %s", src.field)
			}
		}
	case kind == model.KindNginx || kind == model.KindTraefik:
		data = n.proxy()
	default:
		data = n.app()
	}

	if len(n.errs) > 0 {
		return model.ServiceRecord{}, nil, n.errs
	}
	return model.ServiceRecord{Type: kind, Data: data}, warnings, nil
}

func substitutionError(service string, err error) *ValidationError {
	field := ""
	var fe *fieldErr
	if errors.As(err, &fe) {
		field = fe.field
		err = fe.err
	}
	return &ValidationError{
		Service: service,
		Field:   field,
		Message: err.Error(),
		Err:     ErrInvalidEnvironment,
	}
}

func decodeError(service string, err error) *ValidationError {
	verr := &ValidationError{Service: service, Message: err.Error(), Err: ErrInvalidField}
	var fe *compose.FieldError
	if errors.As(err, &fe) {
		verr.Field = fe.Field
		verr.Message = fe.Err.Error()
		switch fe.Field {
		case "ports":
			verr.Err = ErrInvalidPort
		case "volumes":
			verr.Err = ErrInvalidVolume
		case "environment":
			verr.Err = ErrInvalidEnvironment
		}
	}
	return verr
}
